package lifecycle

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Contexto resume los campos de la orden que las reglas de negocio necesitan.
// El validador corre DESPUÉS del chequeo de arista y de permiso, y es puro:
// nada se muta hasta que todas las verificaciones pasan.
type Contexto struct {
	TieneDiagnostico bool
	ClienteAprobado  bool
	TecnicoAsignado  bool
	TotalPagado      decimal.Decimal
	CostoTotal       decimal.Decimal // costo de diagnóstico + costo de reparación
}

// ValidarReglas aplica las precondiciones que la tabla y la matriz no pueden
// expresar estructuralmente. Devuelve nil o un *PrecondicionError.
func ValidarReglas(de, a Estado, ctx Contexto) error {
	switch a {
	case EstadoDiagnosticoCompleto:
		if !ctx.TieneDiagnostico {
			return nuevaPrecondicion(RazonDiagnosticoFaltante,
				"no se puede completar el diagnóstico sin un diagnóstico registrado")
		}

	case EstadoEnReparacion:
		if !ctx.ClienteAprobado {
			return nuevaPrecondicion(RazonSinAprobacion,
				"el cliente todavía no aprobó la cotización")
		}
		if !ctx.TecnicoAsignado {
			return nuevaPrecondicion(RazonSinTecnico,
				"la orden no tiene técnico asignado")
		}

	case EstadoPagadoYEntregado:
		if ctx.TotalPagado.LessThan(ctx.CostoTotal) {
			saldo := ctx.CostoTotal.Sub(ctx.TotalPagado)
			return &PrecondicionError{
				Codigo: RazonPagoInsuficiente,
				Mensaje: fmt.Sprintf("pago insuficiente para entregar: faltan $%s de un total de $%s",
					saldo.StringFixed(2), ctx.CostoTotal.StringFixed(2)),
				Esperado: ctx.CostoTotal,
				Saldo:    saldo,
			}
		}
	}
	return nil
}
