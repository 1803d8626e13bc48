package service

import (
	"context"
	"testing"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entornoInventario struct {
	*entorno
	productos   *stubProductoRepo
	movimientos *stubMovimientoRepo
	inv         InventarioService
}

func nuevoEntornoInventario() *entornoInventario {
	e := &entornoInventario{
		entorno:     nuevoEntorno(),
		productos:   newStubProductoRepo(),
		movimientos: &stubMovimientoRepo{},
	}
	e.inv = NewInventarioService(e.ordenes, e.productos, e.movimientos)
	return e
}

func (e *entornoInventario) sembrarProducto(t *testing.T, stock int) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Nombre:      "Pantalla 15.6 FHD",
		SKU:         "PAN-156-FHD",
		Precio:      d("220.00"),
		StockActual: stock,
		StockMinimo: 2,
		Activo:      true,
	}
	require.NoError(t, e.productos.Create(context.Background(), p))
	return p
}

func (e *entornoInventario) sembrarSolicitud(t *testing.T, ordenID, productoID uuid.UUID, cantidad int) *model.SolicitudInventario {
	t.Helper()
	s := &model.SolicitudInventario{
		OrdenID:        ordenID,
		ProductoID:     productoID,
		ProductoNombre: "Pantalla 15.6 FHD",
		Cantidad:       cantidad,
		SolicitadoPor:  "Diego Paredes",
		Estado:         model.SolicitudPendiente,
	}
	require.NoError(t, e.ordenes.CreateSolicitudTx(nil, s))
	return s
}

func TestSolicitarRepuesto(t *testing.T) {
	ctx := context.Background()

	t.Run("abre una solicitud pendiente sin tocar stock", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)

		resp, err := e.inv.SolicitarRepuesto(ctx, actorTecnico(), ordenID, dto.SolicitarRepuestoRequest{
			ProductoID: producto.ID.String(),
			Cantidad:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, model.SolicitudPendiente, resp.Estado)
		assert.Equal(t, "Diego Paredes", resp.SolicitadoPor)
		assert.Nil(t, resp.AprobadoPor)

		assert.Equal(t, 5, e.productos.productos[producto.ID].StockActual, "el stock se descuenta recién al aprobar")
	})

	t.Run("recepción no pide repuestos", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)

		_, err := e.inv.SolicitarRepuesto(ctx, actorRecepcion(), ordenID, dto.SolicitarRepuestoRequest{
			ProductoID: producto.ID.String(),
			Cantidad:   1,
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})

	t.Run("orden cerrada no admite solicitudes", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoCancelada)
		producto := e.sembrarProducto(t, 5)

		_, err := e.inv.SolicitarRepuesto(ctx, actorTecnico(), ordenID, dto.SolicitarRepuestoRequest{
			ProductoID: producto.ID.String(),
			Cantidad:   1,
		})
		assert.Equal(t, lifecycle.RazonOrdenTerminal, precondicion(t, err).Codigo)
	})

	t.Run("producto inactivo", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		producto.Activo = false

		_, err := e.inv.SolicitarRepuesto(ctx, actorTecnico(), ordenID, dto.SolicitarRepuestoRequest{
			ProductoID: producto.ID.String(),
			Cantidad:   1,
		})
		assert.ErrorContains(t, err, "inactivo")
	})
}

func TestAprobarSolicitud(t *testing.T) {
	ctx := context.Background()

	t.Run("descuenta stock y asienta el movimiento", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		resp, err := e.inv.AprobarSolicitud(ctx, actorAdmin(), solicitud.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SolicitudAprobada, resp.Estado)
		require.NotNil(t, resp.AprobadoPor)
		assert.Equal(t, "Laura Méndez", *resp.AprobadoPor)
		assert.NotNil(t, resp.FechaAprobacion)

		assert.Equal(t, 3, e.productos.productos[producto.ID].StockActual)

		require.Len(t, e.movimientos.movimientos, 1)
		mov := e.movimientos.movimientos[0]
		assert.Equal(t, "salida_reparacion", mov.Tipo)
		assert.Equal(t, -2, mov.Cantidad)
		assert.Equal(t, 5, mov.StockAnterior)
		assert.Equal(t, 3, mov.StockNuevo)
		require.NotNil(t, mov.ReferenciaID)
		assert.Equal(t, solicitud.ID, *mov.ReferenciaID)
	})

	t.Run("stock insuficiente aborta sin tocar nada", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 1)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 3)

		_, err := e.inv.AprobarSolicitud(ctx, actorAdmin(), solicitud.ID)
		assert.Equal(t, lifecycle.RazonStockInsuficiente, precondicion(t, err).Codigo)

		assert.Equal(t, 1, e.productos.productos[producto.ID].StockActual)
		assert.Empty(t, e.movimientos.movimientos)
		assert.Equal(t, model.SolicitudPendiente, e.ordenes.solicitudes[solicitud.ID].Estado, "la solicitud sigue pendiente y puede reintentar")
	})

	t.Run("una solicitud resuelta no se reaprueba", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		_, err := e.inv.AprobarSolicitud(ctx, actorAdmin(), solicitud.ID)
		require.NoError(t, err)

		_, err = e.inv.AprobarSolicitud(ctx, actorAdmin(), solicitud.ID)
		assert.Equal(t, lifecycle.RazonSolicitudResuelta, precondicion(t, err).Codigo)
		assert.Equal(t, 3, e.productos.productos[producto.ID].StockActual, "el stock se descontó una sola vez")
	})

	t.Run("solo el administrador aprueba", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		_, err := e.inv.AprobarSolicitud(ctx, actorTecnico(), solicitud.ID)
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})

	t.Run("solicitud inexistente", func(t *testing.T) {
		e := nuevoEntornoInventario()
		_, err := e.inv.AprobarSolicitud(ctx, actorAdmin(), uuid.New())
		assert.ErrorIs(t, err, lifecycle.ErrSolicitudNoEncontrada)
	})
}

func TestRechazarSolicitud(t *testing.T) {
	ctx := context.Background()

	t.Run("cierra con justificación y sin tocar stock", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		resp, err := e.inv.RechazarSolicitud(ctx, actorAdmin(), solicitud.ID, dto.RechazarSolicitudRequest{
			Notas: "Conviene pedir el repuesto original al proveedor",
		})
		require.NoError(t, err)
		assert.Equal(t, model.SolicitudRechazada, resp.Estado)
		require.NotNil(t, resp.Justificacion)
		assert.Equal(t, "Conviene pedir el repuesto original al proveedor", *resp.Justificacion)

		assert.Equal(t, 5, e.productos.productos[producto.ID].StockActual)
		assert.Empty(t, e.movimientos.movimientos)
	})

	t.Run("una solicitud resuelta no se rechaza de nuevo", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		req := dto.RechazarSolicitudRequest{Notas: "Sin stock del proveedor"}
		_, err := e.inv.RechazarSolicitud(ctx, actorAdmin(), solicitud.ID, req)
		require.NoError(t, err)

		_, err = e.inv.RechazarSolicitud(ctx, actorAdmin(), solicitud.ID, req)
		assert.Equal(t, lifecycle.RazonSolicitudResuelta, precondicion(t, err).Codigo)
	})

	t.Run("solo el administrador rechaza", func(t *testing.T) {
		e := nuevoEntornoInventario()
		ordenID := e.sembrarOrden(lifecycle.EstadoEnReparacion)
		producto := e.sembrarProducto(t, 5)
		solicitud := e.sembrarSolicitud(t, ordenID, producto.ID, 2)

		_, err := e.inv.RechazarSolicitud(ctx, actorRecepcion(), solicitud.ID, dto.RechazarSolicitudRequest{
			Notas: "Intento indebido",
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})
}

func TestAjustarStock(t *testing.T) {
	ctx := context.Background()

	t.Run("delta positivo se asienta como ingreso de compra", func(t *testing.T) {
		e := nuevoEntornoInventario()
		producto := e.sembrarProducto(t, 5)

		resp, err := e.inv.AjustarStock(ctx, actorAdmin(), producto.ID, dto.AjustarStockRequest{
			Cantidad: 10,
			Motivo:   "Ingreso de mercadería del proveedor",
		})
		require.NoError(t, err)
		assert.Equal(t, "ingreso_compra", resp.Tipo)
		assert.Equal(t, 5, resp.StockAnterior)
		assert.Equal(t, 15, resp.StockNuevo)
		assert.Equal(t, 15, e.productos.productos[producto.ID].StockActual)
	})

	t.Run("delta negativo es ajuste manual", func(t *testing.T) {
		e := nuevoEntornoInventario()
		producto := e.sembrarProducto(t, 5)

		resp, err := e.inv.AjustarStock(ctx, actorAdmin(), producto.ID, dto.AjustarStockRequest{
			Cantidad: -2,
			Motivo:   "Rotura en depósito",
		})
		require.NoError(t, err)
		assert.Equal(t, "ajuste_manual", resp.Tipo)
		assert.Equal(t, 3, resp.StockNuevo)
	})

	t.Run("el ajuste no puede dejar stock negativo", func(t *testing.T) {
		e := nuevoEntornoInventario()
		producto := e.sembrarProducto(t, 5)

		_, err := e.inv.AjustarStock(ctx, actorAdmin(), producto.ID, dto.AjustarStockRequest{
			Cantidad: -6,
			Motivo:   "Conteo físico",
		})
		assert.Equal(t, lifecycle.RazonStockInsuficiente, precondicion(t, err).Codigo)
		assert.Equal(t, 5, e.productos.productos[producto.ID].StockActual)
	})

	t.Run("ajuste cero es inválido", func(t *testing.T) {
		e := nuevoEntornoInventario()
		producto := e.sembrarProducto(t, 5)

		_, err := e.inv.AjustarStock(ctx, actorAdmin(), producto.ID, dto.AjustarStockRequest{
			Cantidad: 0,
			Motivo:   "Nada que ajustar",
		})
		assert.Equal(t, lifecycle.RazonMontoInvalido, precondicion(t, err).Codigo)
	})

	t.Run("solo el administrador ajusta", func(t *testing.T) {
		e := nuevoEntornoInventario()
		producto := e.sembrarProducto(t, 5)

		_, err := e.inv.AjustarStock(ctx, actorTecnico(), producto.ID, dto.AjustarStockRequest{
			Cantidad: 1,
			Motivo:   "Intento indebido",
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})
}
