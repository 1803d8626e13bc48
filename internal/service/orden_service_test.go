package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func precondicion(t *testing.T, err error) *lifecycle.PrecondicionError {
	t.Helper()
	var pre *lifecycle.PrecondicionError
	require.True(t, errors.As(err, &pre), "se esperaba *PrecondicionError, vino %v", err)
	return pre
}

func actorAdmin() Actor {
	return Actor{ID: uuid.New(), Nombre: "Laura Méndez", Rol: lifecycle.RolAdministrador}
}

func actorRecepcion() Actor {
	return Actor{ID: uuid.New(), Nombre: "Sofía Reyes", Rol: lifecycle.RolRecepcion}
}

func actorTecnico() Actor {
	return Actor{ID: uuid.New(), Nombre: "Diego Paredes", Rol: lifecycle.RolTecnico}
}

// entorno arma el servicio de órdenes sobre los stubs, sin Redis ni dispatcher.
type entorno struct {
	ordenes  *stubOrdenRepo
	clientes *stubClienteRepo
	equipos  *stubEquipoRepo
	usuarios *stubUsuarioRepo
	svc      OrdenService
}

func nuevoEntorno() *entorno {
	e := &entorno{
		ordenes:  newStubOrdenRepo(),
		clientes: newStubClienteRepo(),
		equipos:  newStubEquipoRepo(),
		usuarios: newStubUsuarioRepo(),
	}
	e.svc = NewOrdenService(e.ordenes, e.clientes, e.equipos, e.usuarios, nil, nil)
	return e
}

func (e *entorno) sembrarCliente(t *testing.T) *model.Cliente {
	t.Helper()
	cliente := &model.Cliente{Nombre: "Marta Juárez", Telefono: "555-0101", Activo: true}
	require.NoError(t, e.clientes.Create(context.Background(), cliente))
	return cliente
}

func (e *entorno) sembrarEquipo(t *testing.T, clienteID uuid.UUID) *model.Equipo {
	t.Helper()
	equipo := &model.Equipo{ClienteID: clienteID, Tipo: "laptop", Marca: "Dell", Modelo: "Inspiron 15"}
	require.NoError(t, e.equipos.Create(context.Background(), equipo))
	return equipo
}

// sembrarOrden inserta una orden directo en el stub, salteando CrearOrden.
func (e *entorno) sembrarOrden(estado lifecycle.Estado, mut ...func(*model.OrdenServicio)) uuid.UUID {
	o := &model.OrdenServicio{
		ID:               uuid.New(),
		Folio:            fmt.Sprintf("OS-%06d", len(e.ordenes.ordenes)+1),
		ClienteID:        uuid.New(),
		EquipoID:         uuid.New(),
		ClienteNombre:    "Marta Juárez",
		ClienteTelefono:  "555-0101",
		EquipoEtiqueta:   "laptop Dell Inspiron 15",
		FallaReportada:   "No enciende",
		Estado:           estado,
		Prioridad:        "normal",
		CostoDiagnostico: d("150.00"),
		Version:          1,
	}
	for _, m := range mut {
		m(o)
	}
	e.ordenes.ordenes[o.ID] = o
	return o.ID
}

func TestCrearOrden(t *testing.T) {
	ctx := context.Background()

	t.Run("alta con cobro de diagnóstico", func(t *testing.T) {
		e := nuevoEntorno()
		cliente := e.sembrarCliente(t)
		equipo := e.sembrarEquipo(t, cliente.ID)

		resp, err := e.svc.CrearOrden(ctx, actorRecepcion(), dto.CrearOrdenRequest{
			ClienteID:        cliente.ID.String(),
			EquipoID:         equipo.ID.String(),
			FallaReportada:   "No enciende tras una caída",
			CostoDiagnostico: d("150.00"),
			MetodoPago:       "efectivo",
		})
		require.NoError(t, err)

		assert.Equal(t, "OS-000001", resp.Folio)
		assert.Equal(t, string(lifecycle.EstadoInicial), resp.Estado)
		assert.Equal(t, "normal", resp.Prioridad)
		assert.Equal(t, "laptop Dell Inspiron 15", resp.EquipoEtiqueta)

		// El diagnóstico se cobra en el mismo acto.
		require.Len(t, resp.Pagos, 1)
		assert.Equal(t, "diagnostico", resp.Pagos[0].Tipo)
		assert.True(t, resp.TotalPagado.Equal(d("150.00")))
		assert.True(t, resp.SaldoPendiente.Equal(decimal.Zero))

		// Primera entrada del historial: estado_anterior nulo marca la creación.
		require.Len(t, resp.Historial, 1)
		assert.Nil(t, resp.Historial[0].EstadoAnterior)
		assert.Equal(t, string(lifecycle.EstadoInicial), resp.Historial[0].EstadoNuevo)
		assert.Equal(t, "Sofía Reyes", resp.Historial[0].Usuario)
	})

	t.Run("folios consecutivos", func(t *testing.T) {
		e := nuevoEntorno()
		cliente := e.sembrarCliente(t)
		equipo := e.sembrarEquipo(t, cliente.ID)
		req := dto.CrearOrdenRequest{
			ClienteID:        cliente.ID.String(),
			EquipoID:         equipo.ID.String(),
			FallaReportada:   "Pantalla rota",
			CostoDiagnostico: d("100.00"),
			MetodoPago:       "efectivo",
		}
		primera, err := e.svc.CrearOrden(ctx, actorRecepcion(), req)
		require.NoError(t, err)
		segunda, err := e.svc.CrearOrden(ctx, actorRecepcion(), req)
		require.NoError(t, err)
		assert.Equal(t, "OS-000001", primera.Folio)
		assert.Equal(t, "OS-000002", segunda.Folio)
	})

	t.Run("garantía no cobra diagnóstico", func(t *testing.T) {
		e := nuevoEntorno()
		cliente := e.sembrarCliente(t)
		equipo := e.sembrarEquipo(t, cliente.ID)

		resp, err := e.svc.CrearOrden(ctx, actorRecepcion(), dto.CrearOrdenRequest{
			ClienteID:        cliente.ID.String(),
			EquipoID:         equipo.ID.String(),
			FallaReportada:   "Falla recurrente dentro de garantía",
			EsGarantia:       true,
			CostoDiagnostico: d("150.00"),
			MetodoPago:       "efectivo",
		})
		require.NoError(t, err)
		assert.True(t, resp.CostoDiagnostico.Equal(decimal.Zero))
		assert.Empty(t, resp.Pagos)
	})

	t.Run("equipo de otro cliente", func(t *testing.T) {
		e := nuevoEntorno()
		cliente := e.sembrarCliente(t)
		otro := &model.Cliente{Nombre: "Pedro Lima", Activo: true}
		require.NoError(t, e.clientes.Create(ctx, otro))
		equipoAjeno := e.sembrarEquipo(t, otro.ID)

		_, err := e.svc.CrearOrden(ctx, actorRecepcion(), dto.CrearOrdenRequest{
			ClienteID:        cliente.ID.String(),
			EquipoID:         equipoAjeno.ID.String(),
			FallaReportada:   "No carga la batería",
			CostoDiagnostico: d("150.00"),
			MetodoPago:       "efectivo",
		})
		assert.ErrorContains(t, err, "no pertenece")
	})

	t.Run("costo de diagnóstico negativo", func(t *testing.T) {
		e := nuevoEntorno()
		cliente := e.sembrarCliente(t)
		equipo := e.sembrarEquipo(t, cliente.ID)

		_, err := e.svc.CrearOrden(ctx, actorRecepcion(), dto.CrearOrdenRequest{
			ClienteID:        cliente.ID.String(),
			EquipoID:         equipo.ID.String(),
			FallaReportada:   "Teclado no responde",
			CostoDiagnostico: d("-10.00"),
			MetodoPago:       "efectivo",
		})
		assert.Equal(t, lifecycle.RazonMontoInvalido, precondicion(t, err).Codigo)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		e := nuevoEntorno()
		_, err := e.svc.CrearOrden(ctx, actorRecepcion(), dto.CrearOrdenRequest{
			ClienteID:        uuid.NewString(),
			EquipoID:         uuid.NewString(),
			FallaReportada:   "No enciende",
			CostoDiagnostico: d("150.00"),
			MetodoPago:       "efectivo",
		})
		assert.ErrorContains(t, err, "no encontrado")
	})
}

func TestAplicarTransicion(t *testing.T) {
	ctx := context.Background()

	t.Run("transición válida asienta historial y bump de versión", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)

		notas := "equipo en banco 3"
		resp, err := e.svc.AplicarTransicion(ctx, actorTecnico(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnDiagnostico),
			Notas:  &notas,
		})
		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.EstadoEnDiagnostico), resp.Estado)

		require.Len(t, resp.Historial, 1)
		require.NotNil(t, resp.Historial[0].EstadoAnterior)
		assert.Equal(t, string(lifecycle.EstadoEsperandoDiagnostico), *resp.Historial[0].EstadoAnterior)
		assert.Equal(t, "equipo en banco 3", *resp.Historial[0].Notas)

		assert.Equal(t, 2, e.ordenes.ordenes[id].Version)
	})

	t.Run("arista inexistente", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)

		_, err := e.svc.AplicarTransicion(ctx, actorAdmin(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnReparacion),
		})
		var inv *lifecycle.TransicionInvalidaError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, lifecycle.EstadoEsperandoDiagnostico, inv.De)
		assert.Equal(t, lifecycle.EstadoEnReparacion, inv.A)
	})

	t.Run("estado desconocido", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)

		_, err := e.svc.AplicarTransicion(ctx, actorAdmin(), id, dto.CambiarEstadoRequest{
			Estado: "Volando",
		})
		var inv *lifecycle.TransicionInvalidaError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, lifecycle.Estado("Volando"), inv.A)
	})

	t.Run("rol sin permiso sobre la arista", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)

		_, err := e.svc.AplicarTransicion(ctx, actorRecepcion(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnDiagnostico),
		})
		var den *lifecycle.PermisoDenegadoError
		require.True(t, errors.As(err, &den))
		assert.Equal(t, lifecycle.RolRecepcion, den.Rol)

		// La orden no se tocó.
		assert.Equal(t, lifecycle.EstadoEsperandoDiagnostico, e.ordenes.ordenes[id].Estado)
		assert.Equal(t, 1, e.ordenes.ordenes[id].Version)
	})

	t.Run("solo el administrador cancela", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnReparacion)

		_, err := e.svc.AplicarTransicion(ctx, actorRecepcion(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoCancelada),
		})
		var den *lifecycle.PermisoDenegadoError
		require.True(t, errors.As(err, &den))

		resp, err := e.svc.AplicarTransicion(ctx, actorAdmin(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoCancelada),
		})
		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.EstadoCancelada), resp.Estado)
	})

	t.Run("entrega bloqueada con saldo pendiente", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnRecepcion, func(o *model.OrdenServicio) {
			o.CostoReparacion = d("300.50")
			o.Pagos = []model.Pago{{OrdenID: o.ID, Tipo: "diagnostico", Metodo: "efectivo", Monto: d("150.00")}}
		})

		_, err := e.svc.AplicarTransicion(ctx, actorRecepcion(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoPagadoYEntregado),
		})
		pre := precondicion(t, err)
		assert.Equal(t, lifecycle.RazonPagoInsuficiente, pre.Codigo)
		assert.True(t, pre.Saldo.Equal(d("300.50")))
	})

	t.Run("entrega con pago completo", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnRecepcion, func(o *model.OrdenServicio) {
			o.CostoReparacion = d("300.50")
			o.Pagos = []model.Pago{
				{OrdenID: o.ID, Tipo: "diagnostico", Metodo: "efectivo", Monto: d("150.00")},
				{OrdenID: o.ID, Tipo: "pago_final", Metodo: "tarjeta", Monto: d("300.50")},
			}
		})

		resp, err := e.svc.AplicarTransicion(ctx, actorRecepcion(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoPagadoYEntregado),
		})
		require.NoError(t, err)
		assert.Equal(t, string(lifecycle.EstadoPagadoYEntregado), resp.Estado)
		assert.Empty(t, resp.EstadosSiguientes)
	})

	t.Run("la cadena automática firma como Sistema", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnReparacion)

		resp, err := e.svc.AplicarTransicion(ctx, actorTecnico(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoReparacionTerminada),
		})
		require.NoError(t, err)

		// El salto Reparación terminada → Lista para entrega corre solo, en la
		// misma operación: el estado intermedio nunca queda visible.
		assert.Equal(t, string(lifecycle.EstadoListaParaEntrega), resp.Estado)
		assert.Equal(t, lifecycle.EstadoListaParaEntrega, e.ordenes.ordenes[id].Estado)

		require.Len(t, resp.Historial, 2)
		assert.Equal(t, "Diego Paredes", resp.Historial[0].Usuario)
		assert.Equal(t, string(lifecycle.EstadoReparacionTerminada), resp.Historial[0].EstadoNuevo)
		assert.Equal(t, model.UsuarioSistema, resp.Historial[1].Usuario)
		assert.Equal(t, string(lifecycle.EstadoReparacionTerminada), *resp.Historial[1].EstadoAnterior)
		assert.Equal(t, string(lifecycle.EstadoListaParaEntrega), resp.Historial[1].EstadoNuevo)
		assert.Equal(t, resp.Historial[0].Fecha, resp.Historial[1].Fecha)
	})

	t.Run("orden terminal no admite transiciones", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoCancelada)

		_, err := e.svc.AplicarTransicion(ctx, actorAdmin(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnDiagnostico),
		})
		assert.Equal(t, lifecycle.RazonOrdenTerminal, precondicion(t, err).Codigo)
	})

	t.Run("escritor concurrente dispara conflicto", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)
		// Otro proceso se cuela entre nuestra lectura y el UPDATE.
		e.ordenes.afterFind = func() {
			e.ordenes.ordenes[id].Version++
		}

		_, err := e.svc.AplicarTransicion(ctx, actorTecnico(), id, dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnDiagnostico),
		})
		assert.ErrorIs(t, err, lifecycle.ErrConflictoConcurrencia)
	})

	t.Run("orden inexistente", func(t *testing.T) {
		e := nuevoEntorno()
		_, err := e.svc.AplicarTransicion(ctx, actorAdmin(), uuid.New(), dto.CambiarEstadoRequest{
			Estado: string(lifecycle.EstadoEnDiagnostico),
		})
		assert.ErrorIs(t, err, lifecycle.ErrNoEncontrada)
	})
}

func TestRegistrarDiagnostico(t *testing.T) {
	ctx := context.Background()

	t.Run("fija la cotización en la orden", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		resp, err := e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, dto.RegistrarDiagnosticoRequest{
			Descripcion:        "Fuente quemada, requiere reemplazo",
			CostoEstimado:      d("480.00"),
			TiempoEstimadoDias: 3,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Diagnostico)
		assert.Equal(t, 3, resp.Diagnostico.TiempoEstimadoDias)
		assert.True(t, resp.CostoReparacion.Equal(d("480.00")))
	})

	t.Run("tiempo estimado mínimo un día", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		resp, err := e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, dto.RegistrarDiagnosticoRequest{
			Descripcion:   "Limpieza y pasta térmica",
			CostoEstimado: d("80.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Diagnostico.TiempoEstimadoDias)
	})

	t.Run("garantía no fija costo de reparación", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico, func(o *model.OrdenServicio) {
			o.EsGarantia = true
			o.CostoDiagnostico = decimal.Zero
		})

		resp, err := e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, dto.RegistrarDiagnosticoRequest{
			Descripcion:   "Mismo desperfecto, cubre garantía",
			CostoEstimado: d("480.00"),
		})
		require.NoError(t, err)
		assert.True(t, resp.CostoReparacion.Equal(decimal.Zero))
		assert.True(t, resp.SaldoPendiente.Equal(decimal.Zero))
	})

	t.Run("write-once", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		req := dto.RegistrarDiagnosticoRequest{Descripcion: "Disco dañado", CostoEstimado: d("200.00")}
		_, err := e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, req)
		require.NoError(t, err)

		_, err = e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, req)
		assert.Equal(t, lifecycle.RazonRegistroDuplicado, precondicion(t, err).Codigo)
	})

	t.Run("recepción no diagnostica", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		_, err := e.svc.RegistrarDiagnostico(ctx, actorRecepcion(), id, dto.RegistrarDiagnosticoRequest{
			Descripcion:   "Intento indebido",
			CostoEstimado: d("100.00"),
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})

	t.Run("costo estimado negativo", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		_, err := e.svc.RegistrarDiagnostico(ctx, actorTecnico(), id, dto.RegistrarDiagnosticoRequest{
			Descripcion:   "Costo imposible",
			CostoEstimado: d("-1.00"),
		})
		assert.Equal(t, lifecycle.RazonMontoInvalido, precondicion(t, err).Codigo)
	})
}

func TestAprobarCotizacion(t *testing.T) {
	ctx := context.Background()

	sembrarConDiagnostico := func(e *entorno) uuid.UUID {
		return e.sembrarOrden(lifecycle.EstadoEsperandoAprobacion, func(o *model.OrdenServicio) {
			o.CostoReparacion = d("480.00")
			o.Diagnostico = &model.Diagnostico{
				OrdenID:       o.ID,
				TecnicoID:     uuid.New(),
				Descripcion:   "Fuente quemada",
				CostoEstimado: d("480.00"),
			}
		})
	}

	t.Run("asienta el sí del cliente", func(t *testing.T) {
		e := nuevoEntorno()
		id := sembrarConDiagnostico(e)

		resp, err := e.svc.AprobarCotizacion(ctx, actorRecepcion(), id)
		require.NoError(t, err)
		assert.True(t, resp.ClienteAprobado)
		assert.True(t, e.ordenes.ordenes[id].ClienteAprobado)
	})

	t.Run("idempotente", func(t *testing.T) {
		e := nuevoEntorno()
		id := sembrarConDiagnostico(e)

		_, err := e.svc.AprobarCotizacion(ctx, actorRecepcion(), id)
		require.NoError(t, err)
		version := e.ordenes.ordenes[id].Version

		resp, err := e.svc.AprobarCotizacion(ctx, actorAdmin(), id)
		require.NoError(t, err)
		assert.True(t, resp.ClienteAprobado)
		assert.Equal(t, version, e.ordenes.ordenes[id].Version, "la segunda aprobación no reescribe")
	})

	t.Run("sin diagnóstico no hay cotización", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		_, err := e.svc.AprobarCotizacion(ctx, actorRecepcion(), id)
		assert.Equal(t, lifecycle.RazonDiagnosticoFaltante, precondicion(t, err).Codigo)
	})

	t.Run("el técnico no aprueba por el cliente", func(t *testing.T) {
		e := nuevoEntorno()
		id := sembrarConDiagnostico(e)

		_, err := e.svc.AprobarCotizacion(ctx, actorTecnico(), id)
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})
}

func TestAsignarTecnico(t *testing.T) {
	ctx := context.Background()

	sembrarTecnico := func(t *testing.T, e *entorno, rol string, activo bool) *model.Usuario {
		t.Helper()
		u := &model.Usuario{Username: "dparedes", Nombre: "Diego Paredes", Rol: rol, Activo: activo}
		require.NoError(t, e.usuarios.Create(ctx, u))
		return u
	}

	t.Run("vincula un técnico activo", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoAprobacion)
		tecnico := sembrarTecnico(t, e, string(lifecycle.RolTecnico), true)

		resp, err := e.svc.AsignarTecnico(ctx, actorAdmin(), id, dto.AsignarTecnicoRequest{
			TecnicoID: tecnico.ID.String(),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.TecnicoAsignadoID)
		assert.Equal(t, tecnico.ID.String(), *resp.TecnicoAsignadoID)
	})

	t.Run("el usuario debe tener rol técnico", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoAprobacion)
		noTecnico := sembrarTecnico(t, e, string(lifecycle.RolRecepcion), true)

		_, err := e.svc.AsignarTecnico(ctx, actorAdmin(), id, dto.AsignarTecnicoRequest{
			TecnicoID: noTecnico.ID.String(),
		})
		assert.ErrorContains(t, err, "no es un técnico activo")
	})

	t.Run("técnico inactivo", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoAprobacion)
		inactivo := sembrarTecnico(t, e, string(lifecycle.RolTecnico), false)

		_, err := e.svc.AsignarTecnico(ctx, actorAdmin(), id, dto.AsignarTecnicoRequest{
			TecnicoID: inactivo.ID.String(),
		})
		assert.ErrorContains(t, err, "no es un técnico activo")
	})

	t.Run("un técnico no se autoasigna", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEsperandoAprobacion)
		tecnico := sembrarTecnico(t, e, string(lifecycle.RolTecnico), true)

		_, err := e.svc.AsignarTecnico(ctx, actorTecnico(), id, dto.AsignarTecnicoRequest{
			TecnicoID: tecnico.ID.String(),
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})
}

func TestRegistrarReparacion(t *testing.T) {
	ctx := context.Background()

	t.Run("asienta el cierre técnico", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnReparacion)

		repuestos := "fuente ATX 500W"
		resp, err := e.svc.RegistrarReparacion(ctx, actorTecnico(), id, dto.RegistrarReparacionRequest{
			TrabajoRealizado:    "Reemplazo de fuente y prueba de carga",
			RepuestosUtilizados: &repuestos,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Reparacion)
		assert.Equal(t, "fuente ATX 500W", *resp.Reparacion.RepuestosUtilizados)
	})

	t.Run("solo con la orden en reparación", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnDiagnostico)

		_, err := e.svc.RegistrarReparacion(ctx, actorTecnico(), id, dto.RegistrarReparacionRequest{
			TrabajoRealizado: "Trabajo fuera de secuencia",
		})
		assert.Equal(t, lifecycle.RazonOrdenTerminal, precondicion(t, err).Codigo)
	})

	t.Run("write-once", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnReparacion)

		req := dto.RegistrarReparacionRequest{TrabajoRealizado: "Cambio de pantalla completa"}
		_, err := e.svc.RegistrarReparacion(ctx, actorTecnico(), id, req)
		require.NoError(t, err)

		_, err = e.svc.RegistrarReparacion(ctx, actorTecnico(), id, req)
		assert.Equal(t, lifecycle.RazonRegistroDuplicado, precondicion(t, err).Codigo)
	})

	t.Run("recepción no registra trabajo", func(t *testing.T) {
		e := nuevoEntorno()
		id := e.sembrarOrden(lifecycle.EstadoEnReparacion)

		_, err := e.svc.RegistrarReparacion(ctx, actorRecepcion(), id, dto.RegistrarReparacionRequest{
			TrabajoRealizado: "Intento indebido",
		})
		assert.ErrorIs(t, err, lifecycle.ErrPermisoDenegado)
	})
}

func TestListarOrdenes(t *testing.T) {
	ctx := context.Background()

	t.Run("filtro por estado con etiqueta inválida", func(t *testing.T) {
		e := nuevoEntorno()
		_, err := e.svc.ListarOrdenes(ctx, dto.OrdenFilter{Estado: "EnReparacion"})
		assert.Error(t, err)
	})

	t.Run("defaults de paginación", func(t *testing.T) {
		e := nuevoEntorno()
		e.sembrarOrden(lifecycle.EstadoEsperandoDiagnostico)

		resp, err := e.svc.ListarOrdenes(ctx, dto.OrdenFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 50, resp.Limit)
		assert.Equal(t, int64(1), resp.Total)
	})
}
