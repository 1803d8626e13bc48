package lifecycle

// Tabla de transiciones como conjunto de adyacencia explícito.
// No hay aristas implícitas "cualquiera→cualquiera": la pertenencia al mapa
// es la única fuente de verdad sobre qué saltos existen.
var siguientesPermitidos = map[Estado][]Estado{
	EstadoEsperandoDiagnostico: {EstadoEnDiagnostico, EstadoCancelada},
	EstadoEnDiagnostico:        {EstadoDiagnosticoCompleto, EstadoCancelada},
	// Desde Diagnóstico completo se puede pasar por Esperando aprobación o
	// saltarla cuando el cliente aprueba en el momento (mostrador).
	EstadoDiagnosticoCompleto:  {EstadoEsperandoAprobacion, EstadoEnReparacion, EstadoCancelada},
	EstadoEsperandoAprobacion:  {EstadoEnReparacion, EstadoCancelada},
	EstadoEnReparacion:         {EstadoReparacionTerminada, EstadoCancelada},
	EstadoReparacionTerminada:  {EstadoListaParaEntrega, EstadoCancelada},
	EstadoListaParaEntrega:     {EstadoEnRecepcion, EstadoCancelada},
	EstadoEnRecepcion:          {EstadoPagadoYEntregado, EstadoCancelada},

	// Terminales: sin aristas salientes.
	EstadoPagadoYEntregado: {},
	EstadoCancelada:        {},
}

// EsTransicionValida es una prueba de pertenencia pura contra la tabla.
func EsTransicionValida(de, a Estado) bool {
	for _, destino := range siguientesPermitidos[de] {
		if destino == a {
			return true
		}
	}
	return false
}

// SiguientesDesde devuelve una copia de los destinos permitidos desde un estado.
// Lo usa la API para que la UI pinte solo los botones aplicables.
func SiguientesDesde(de Estado) []Estado {
	destinos := siguientesPermitidos[de]
	out := make([]Estado, len(destinos))
	copy(out, destinos)
	return out
}
