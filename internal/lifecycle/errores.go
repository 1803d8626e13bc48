package lifecycle

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores tipados del motor. Nunca se usan panics para control de flujo:
// el ejecutor devuelve exactamente uno de estos y la capa HTTP los mapea
// a 404/422/403/409 sin inspeccionar strings.
var (
	ErrNoEncontrada          = errors.New("orden de servicio no encontrada")
	ErrSolicitudNoEncontrada = errors.New("solicitud de inventario no encontrada")
	ErrConflictoConcurrencia = errors.New("la orden fue modificada por otra operación; reintente")
	// ErrPermisoDenegado cubre acciones privilegiadas que no son aristas del
	// grafo (p.ej. aprobar una solicitud de inventario).
	ErrPermisoDenegado = errors.New("permisos insuficientes para esta acción")
)

// TransicionInvalidaError: la arista no existe en la tabla.
// Se reporta distinto de PermisoDenegadoError para que la UI muestre el
// mensaje correcto ("ese salto no existe" vs "no tenés autoridad").
type TransicionInvalidaError struct {
	De Estado
	A  Estado
}

func (e *TransicionInvalidaError) Error() string {
	return fmt.Sprintf("transición inválida: %s → %s", e.De, e.A)
}

// PermisoDenegadoError: la arista existe pero el rol no la puede disparar.
type PermisoDenegadoError struct {
	De  Estado
	A   Estado
	Rol Rol
}

func (e *PermisoDenegadoError) Error() string {
	return fmt.Sprintf("el rol %s no puede aplicar %s → %s", e.Rol, e.De, e.A)
}

// Razon es el código máquina de una precondición incumplida.
type Razon string

const (
	RazonDiagnosticoFaltante Razon = "diagnostico_faltante"
	RazonSinAprobacion       Razon = "cliente_no_aprobo"
	RazonSinTecnico          Razon = "sin_tecnico_asignado"
	RazonPagoInsuficiente    Razon = "pago_insuficiente"
	RazonSumaMixtaInvalida   Razon = "suma_mixta_invalida"
	RazonMontoInvalido       Razon = "monto_invalido"
	RazonOrdenTerminal       Razon = "orden_terminal"
	RazonSolicitudResuelta   Razon = "solicitud_ya_resuelta"
	RazonStockInsuficiente   Razon = "stock_insuficiente"
	RazonPagoNoAprobado      Razon = "pago_externo_no_aprobado"
	RazonRegistroDuplicado   Razon = "registro_duplicado"
)

// PrecondicionError: regla de negocio incumplida. Además del código lleva el
// valor esperado calculado (p.ej. el saldo adeudado) para que el colaborador
// de UI pueda pintar el delta exacto.
type PrecondicionError struct {
	Codigo   Razon
	Mensaje  string
	Esperado decimal.Decimal // total esperado, cuando aplica
	Saldo    decimal.Decimal // monto faltante, cuando aplica
}

func (e *PrecondicionError) Error() string { return e.Mensaje }

func nuevaPrecondicion(codigo Razon, mensaje string) *PrecondicionError {
	return &PrecondicionError{Codigo: codigo, Mensaje: mensaje}
}
