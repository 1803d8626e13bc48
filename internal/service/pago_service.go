package service

import (
	"context"
	"fmt"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"
	"repairsuite/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// VerificadorPagos valida una referencia de pago contra el proveedor externo
// (Mercado Pago). Nil en modo test — la verificación se saltea.
type VerificadorPagos interface {
	VerificarAprobado(ctx context.Context, referencia string) error
}

// PagoService lleva el libro de pagos de las órdenes: cada cobro es una fila
// inmutable y el total pagado es siempre la suma de sus componentes.
type PagoService interface {
	RegistrarPago(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenResponse, error)
	RegistrarPagoMixto(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarPagoMixtoRequest) (*dto.OrdenResponse, error)
	EstadoCuenta(ctx context.Context, ordenID uuid.UUID) (*dto.EstadoCuentaResponse, error)
}

type pagoService struct {
	repo        repository.OrdenRepository
	verificador VerificadorPagos
	rdb         *redis.Client
	dispatcher  *worker.Dispatcher
}

func NewPagoService(
	repo repository.OrdenRepository,
	verificador VerificadorPagos,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
) PagoService {
	return &pagoService{
		repo:        repo,
		verificador: verificador,
		rdb:         rdb,
		dispatcher:  dispatcher,
	}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// Pago simple con un solo método. El monto debe ser positivo y no exceder el
// saldo pendiente; los pagos con Mercado Pago exigen referencia verificable.

func (s *pagoService) RegistrarPago(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonMontoInvalido,
			Mensaje: "el monto del pago debe ser positivo",
		}
	}

	if req.Metodo == "mercado_pago" {
		if req.Referencia == nil || *req.Referencia == "" {
			return nil, &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonPagoNoAprobado,
				Mensaje: "un pago con Mercado Pago requiere la referencia de la transacción",
			}
		}
		if s.verificador != nil {
			if err := s.verificador.VerificarAprobado(ctx, *req.Referencia); err != nil {
				return nil, &lifecycle.PrecondicionError{
					Codigo:  lifecycle.RazonPagoNoAprobado,
					Mensaje: fmt.Sprintf("Mercado Pago no aprobó la transacción %s: %v", *req.Referencia, err),
				}
			}
		}
	}

	pago := &model.Pago{
		Tipo:        req.Tipo,
		Metodo:      req.Metodo,
		Monto:       req.Monto,
		RecibidoPor: actor.Nombre,
		Referencia:  req.Referencia,
	}
	return s.asentarPago(ctx, ordenID, pago)
}

// ── RegistrarPagoMixto ────────────────────────────────────────────────────────
// Un pago mixto reparte el monto entre los cinco métodos. La suma del desglose
// debe igualar el monto EXACTAMENTE: sin tolerancia de redondeo, porque el
// arqueo de caja cuadra contra cada cubo por separado.

func (s *pagoService) RegistrarPagoMixto(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarPagoMixtoRequest) (*dto.OrdenResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonMontoInvalido,
			Mensaje: "el monto del pago debe ser positivo",
		}
	}

	desglose := model.DesglosePago{
		Efectivo:      req.Desglose.Efectivo,
		Tarjeta:       req.Desglose.Tarjeta,
		Transferencia: req.Desglose.Transferencia,
		MercadoPago:   req.Desglose.MercadoPago,
		Deposito:      req.Desglose.Deposito,
	}
	for _, cubo := range []struct {
		nombre   string
		negativo bool
	}{
		{"efectivo", desglose.Efectivo.IsNegative()},
		{"tarjeta", desglose.Tarjeta.IsNegative()},
		{"transferencia", desglose.Transferencia.IsNegative()},
		{"mercado_pago", desglose.MercadoPago.IsNegative()},
		{"deposito", desglose.Deposito.IsNegative()},
	} {
		if cubo.negativo {
			return nil, &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonMontoInvalido,
				Mensaje: fmt.Sprintf("el componente %s del desglose no puede ser negativo", cubo.nombre),
			}
		}
	}

	if suma := desglose.Suma(); !suma.Equal(req.Monto) {
		return nil, &lifecycle.PrecondicionError{
			Codigo: lifecycle.RazonSumaMixtaInvalida,
			Mensaje: fmt.Sprintf("el desglose suma $%s pero el monto declarado es $%s",
				suma.StringFixed(2), req.Monto.StringFixed(2)),
			Esperado: req.Monto,
			Saldo:    req.Monto.Sub(suma),
		}
	}

	pago := &model.Pago{
		Tipo:        req.Tipo,
		Metodo:      "mixto",
		Monto:       req.Monto,
		RecibidoPor: actor.Nombre,
		Desglose:    &desglose,
	}
	return s.asentarPago(ctx, ordenID, pago)
}

// asentarPago valida contra el saldo y persiste el pago junto con el bump de
// versión de la orden, serializando cobros concurrentes sobre la misma orden.
func (s *pagoService) asentarPago(ctx context.Context, ordenID uuid.UUID, pago *model.Pago) (*dto.OrdenResponse, error) {
	var orden *model.OrdenServicio
	err := conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden.Estado == lifecycle.EstadoCancelada {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: "una orden cancelada no acepta pagos",
			}
		}
		if saldo := orden.SaldoPendiente(); pago.Monto.GreaterThan(saldo) {
			return &lifecycle.PrecondicionError{
				Codigo: lifecycle.RazonMontoInvalido,
				Mensaje: fmt.Sprintf("el pago de $%s excede el saldo pendiente de $%s",
					pago.Monto.StringFixed(2), saldo.StringFixed(2)),
				Esperado: saldo,
				Saldo:    saldo,
			}
		}

		pago.OrdenID = orden.ID
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.AppendPagoTx(tx, pago); err != nil {
				return err
			}
			// Bump de versión: dos cobros simultáneos no pueden pasar ambos
			// el chequeo de saldo sobre la misma lectura.
			if err := s.repo.UpdateOrdenTx(tx, orden); err != nil {
				return err
			}
			orden.Pagos = append(orden.Pagos, *pago)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.encolarPagoRecibido(ctx, orden, pago)
	return ordenToResponse(orden), nil
}

func (s *pagoService) EstadoCuenta(ctx context.Context, ordenID uuid.UUID) (*dto.EstadoCuentaResponse, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	pagos := make([]dto.PagoResponse, 0, len(orden.Pagos))
	for i := range orden.Pagos {
		pagos = append(pagos, *pagoToResponse(&orden.Pagos[i]))
	}
	return &dto.EstadoCuentaResponse{
		OrdenID:          orden.ID.String(),
		Folio:            orden.Folio,
		CostoDiagnostico: orden.CostoDiagnostico,
		CostoReparacion:  orden.CostoReparacion,
		CostoTotal:       orden.CostoTotal(),
		TotalPagado:      orden.TotalPagado(),
		SaldoPendiente:   orden.SaldoPendiente(),
		Pagos:            pagos,
	}, nil
}

func (s *pagoService) encolarPagoRecibido(ctx context.Context, orden *model.OrdenServicio, pago *model.Pago) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.NotificacionPayload{
		Evento:          model.EventoPagoRecibido,
		OrdenID:         orden.ID.String(),
		Folio:           orden.Folio,
		ClienteID:       orden.ClienteID.String(),
		ClienteNombre:   orden.ClienteNombre,
		ClienteTelefono: orden.ClienteTelefono,
		EquipoEtiqueta:  orden.EquipoEtiqueta,
		Estado:          string(orden.Estado),
		Monto:           pago.Monto.StringFixed(2),
		Saldo:           orden.SaldoPendiente().StringFixed(2),
	}
	_ = s.dispatcher.EnqueueNotificacion(ctx, payload)
}
