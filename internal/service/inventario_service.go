package service

import (
	"context"
	"fmt"
	"time"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService maneja el sub-flujo de solicitudes de repuestos y los
// movimientos de stock del catálogo. Las solicitudes viven adjuntas a una
// orden pero su resolución nunca bloquea la máquina de estados principal.
type InventarioService interface {
	SolicitarRepuesto(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.SolicitarRepuestoRequest) (*dto.SolicitudResponse, error)
	AprobarSolicitud(ctx context.Context, actor Actor, solicitudID uuid.UUID) (*dto.SolicitudResponse, error)
	RechazarSolicitud(ctx context.Context, actor Actor, solicitudID uuid.UUID, req dto.RechazarSolicitudRequest) (*dto.SolicitudResponse, error)
	AjustarStock(ctx context.Context, actor Actor, productoID uuid.UUID, req dto.AjustarStockRequest) (*dto.MovimientoStockResponse, error)
	ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]dto.MovimientoStockResponse, int64, error)
}

type inventarioService struct {
	ordenes     repository.OrdenRepository
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewInventarioService(
	ordenes repository.OrdenRepository,
	productos repository.ProductoRepository,
	movimientos repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{
		ordenes:     ordenes,
		productos:   productos,
		movimientos: movimientos,
	}
}

// SolicitarRepuesto abre una solicitud pendiente sobre una orden viva.
// No descuenta stock: eso ocurre recién al aprobarse.
func (s *inventarioService) SolicitarRepuesto(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.SolicitarRepuestoRequest) (*dto.SolicitudResponse, error) {
	if actor.Rol == lifecycle.RolRecepcion {
		return nil, lifecycle.ErrPermisoDenegado
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}

	orden, err := s.ordenes.FindByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if lifecycle.EsTerminal(orden.Estado) {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonOrdenTerminal,
			Mensaje: "no se pueden pedir repuestos para una orden cerrada",
		}
	}

	producto, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado", req.ProductoID)
	}
	if !producto.Activo {
		return nil, fmt.Errorf("el producto %s está inactivo", producto.Nombre)
	}

	solicitud := &model.SolicitudInventario{
		OrdenID:        orden.ID,
		ProductoID:     producto.ID,
		ProductoNombre: producto.Nombre,
		Cantidad:       req.Cantidad,
		SolicitadoPor:  actor.Nombre,
		Estado:         model.SolicitudPendiente,
	}
	txErr := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		return s.ordenes.CreateSolicitudTx(tx, solicitud)
	})
	if txErr != nil {
		return nil, txErr
	}
	return solicitudToResponse(solicitud), nil
}

// ── AprobarSolicitud ──────────────────────────────────────────────────────────
// Solo el administrador aprueba. En una sola transacción: cierre de la
// solicitud (con guarda de estado pendiente), descuento de stock y movimiento
// de salida. Stock insuficiente aborta todo.

func (s *inventarioService) AprobarSolicitud(ctx context.Context, actor Actor, solicitudID uuid.UUID) (*dto.SolicitudResponse, error) {
	if actor.Rol != lifecycle.RolAdministrador {
		return nil, lifecycle.ErrPermisoDenegado
	}

	solicitud, err := s.ordenes.FindSolicitudByID(ctx, solicitudID)
	if err != nil {
		return nil, err
	}
	if solicitud.Resuelta() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonSolicitudResuelta,
			Mensaje: fmt.Sprintf("la solicitud ya fue resuelta (%s)", solicitud.Estado),
		}
	}

	ahora := time.Now()
	txErr := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		producto, err := s.productos.FindByIDTx(tx, solicitud.ProductoID)
		if err != nil {
			return err
		}
		if producto.StockActual < solicitud.Cantidad {
			return &lifecycle.PrecondicionError{
				Codigo: lifecycle.RazonStockInsuficiente,
				Mensaje: fmt.Sprintf("stock insuficiente de %s: hay %d, se piden %d",
					producto.Nombre, producto.StockActual, solicitud.Cantidad),
			}
		}

		solicitud.Estado = model.SolicitudAprobada
		solicitud.AprobadoPor = &actor.Nombre
		solicitud.FechaAprobacion = &ahora
		if err := s.ordenes.ResolverSolicitudTx(tx, solicitud); err != nil {
			return err
		}

		if err := s.productos.UpdateStockTx(tx, producto.ID, -solicitud.Cantidad); err != nil {
			return err
		}
		solicitudRef := solicitud.ID
		mov := &model.MovimientoStock{
			ProductoID:    producto.ID,
			Tipo:          "salida_reparacion",
			Cantidad:      -solicitud.Cantidad,
			StockAnterior: producto.StockActual,
			StockNuevo:    producto.StockActual - solicitud.Cantidad,
			Motivo:        fmt.Sprintf("Repuesto para orden %s", solicitud.OrdenID),
			ReferenciaID:  &solicitudRef,
		}
		return s.movimientos.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return solicitudToResponse(solicitud), nil
}

// RechazarSolicitud cierra la solicitud sin tocar stock. La justificación ya
// llegó validada como obligatoria desde el DTO.
func (s *inventarioService) RechazarSolicitud(ctx context.Context, actor Actor, solicitudID uuid.UUID, req dto.RechazarSolicitudRequest) (*dto.SolicitudResponse, error) {
	if actor.Rol != lifecycle.RolAdministrador {
		return nil, lifecycle.ErrPermisoDenegado
	}

	solicitud, err := s.ordenes.FindSolicitudByID(ctx, solicitudID)
	if err != nil {
		return nil, err
	}
	if solicitud.Resuelta() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonSolicitudResuelta,
			Mensaje: fmt.Sprintf("la solicitud ya fue resuelta (%s)", solicitud.Estado),
		}
	}

	ahora := time.Now()
	solicitud.Estado = model.SolicitudRechazada
	solicitud.AprobadoPor = &actor.Nombre
	solicitud.FechaAprobacion = &ahora
	solicitud.Justificacion = &req.Notas

	txErr := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		return s.ordenes.ResolverSolicitudTx(tx, solicitud)
	})
	if txErr != nil {
		return nil, txErr
	}
	return solicitudToResponse(solicitud), nil
}

// AjustarStock corrige el stock a mano (conteo físico, rotura, ingreso de
// mercadería). Deltas positivos se asientan como ingreso de compra.
func (s *inventarioService) AjustarStock(ctx context.Context, actor Actor, productoID uuid.UUID, req dto.AjustarStockRequest) (*dto.MovimientoStockResponse, error) {
	if actor.Rol != lifecycle.RolAdministrador {
		return nil, lifecycle.ErrPermisoDenegado
	}
	if req.Cantidad == 0 {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonMontoInvalido,
			Mensaje: "el ajuste debe ser distinto de cero",
		}
	}

	var mov *model.MovimientoStock
	txErr := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		producto, err := s.productos.FindByIDTx(tx, productoID)
		if err != nil {
			return fmt.Errorf("producto %s no encontrado", productoID)
		}
		nuevo := producto.StockActual + req.Cantidad
		if nuevo < 0 {
			return &lifecycle.PrecondicionError{
				Codigo: lifecycle.RazonStockInsuficiente,
				Mensaje: fmt.Sprintf("el ajuste dejaría el stock de %s en %d",
					producto.Nombre, nuevo),
			}
		}
		if err := s.productos.UpdateStockTx(tx, producto.ID, req.Cantidad); err != nil {
			return err
		}

		tipo := "ajuste_manual"
		if req.Cantidad > 0 {
			tipo = "ingreso_compra"
		}
		mov = &model.MovimientoStock{
			ProductoID:    producto.ID,
			Tipo:          tipo,
			Cantidad:      req.Cantidad,
			StockAnterior: producto.StockActual,
			StockNuevo:    nuevo,
			Motivo:        req.Motivo,
		}
		return s.movimientos.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return movimientoToResponse(mov), nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]dto.MovimientoStockResponse, int64, error) {
	movimientos, total, err := s.movimientos.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for i := range movimientos {
		resp = append(resp, *movimientoToResponse(&movimientos[i]))
	}
	return resp, total, nil
}

func movimientoToResponse(m *model.MovimientoStock) *dto.MovimientoStockResponse {
	return &dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		Fecha:         m.CreatedAt.Format(fechaFormato),
	}
}
