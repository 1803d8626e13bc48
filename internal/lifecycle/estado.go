// Package lifecycle implementa el motor de ciclo de vida de las órdenes de
// servicio: estados, tabla de transiciones, matriz de permisos, reglas de
// negocio y resolución de transiciones automáticas. El paquete es puro —
// no toca base de datos ni red — para que cada pieza sea testeable aislada.
package lifecycle

import "fmt"

// Estado es el estado actual de una orden de servicio.
// Las etiquetas son canónicas: las variantes de UI ("Listo para entrega",
// "Pendiente aprobación") se rechazan en ParseEstado.
type Estado string

const (
	EstadoEsperandoDiagnostico Estado = "Esperando diagnóstico"
	EstadoEnDiagnostico        Estado = "En diagnóstico"
	EstadoDiagnosticoCompleto  Estado = "Diagnóstico completo"
	EstadoEsperandoAprobacion  Estado = "Esperando aprobación"
	EstadoEnReparacion         Estado = "En reparación"
	EstadoReparacionTerminada  Estado = "Reparación terminada"
	EstadoListaParaEntrega     Estado = "Lista para entrega"
	EstadoEnRecepcion          Estado = "En recepción"
	EstadoPagadoYEntregado     Estado = "Pagado y entregado"
	EstadoCancelada            Estado = "Cancelada"
)

// EstadoInicial es el estado con el que nace toda orden de servicio.
const EstadoInicial = EstadoEsperandoDiagnostico

// Estados lista el conjunto completo en orden de avance del flujo principal.
var Estados = []Estado{
	EstadoEsperandoDiagnostico,
	EstadoEnDiagnostico,
	EstadoDiagnosticoCompleto,
	EstadoEsperandoAprobacion,
	EstadoEnReparacion,
	EstadoReparacionTerminada,
	EstadoListaParaEntrega,
	EstadoEnRecepcion,
	EstadoPagadoYEntregado,
	EstadoCancelada,
}

var estadosValidos = func() map[Estado]struct{} {
	m := make(map[Estado]struct{}, len(Estados))
	for _, e := range Estados {
		m[e] = struct{}{}
	}
	return m
}()

// ParseEstado valida que la etiqueta recibida sea exactamente una de las
// canónicas. No normaliza ortografías alternativas.
func ParseEstado(s string) (Estado, error) {
	e := Estado(s)
	if _, ok := estadosValidos[e]; !ok {
		return "", fmt.Errorf("estado desconocido: %q", s)
	}
	return e, nil
}

// EsTerminal indica si el estado no tiene aristas salientes.
// Una orden terminal solo admite anexos de registro (pagos, historial).
func EsTerminal(e Estado) bool {
	return e == EstadoPagadoYEntregado || e == EstadoCancelada
}
