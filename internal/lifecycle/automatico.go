package lifecycle

import "fmt"

// Transiciones encadenadas por el sistema: al quedar aplicado el estado clave,
// el ejecutor encadena el salto con autor "Sistema" dentro de la misma unidad
// atómica. Solo las aristas que el negocio marcó como automáticas viven aquí;
// "Lista para entrega → En recepción" es manual (check-in en mostrador).
var automaticas = map[Estado]Estado{
	EstadoReparacionTerminada: EstadoListaParaEntrega,
}

// SiguienteAutomatico devuelve a lo sumo un estado de seguimiento.
func SiguienteAutomatico(e Estado) (Estado, bool) {
	destino, ok := automaticas[e]
	return destino, ok
}

// La acíclicidad del resolver se verifica al cargar el paquete, no con
// detección de bucles en tiempo de ejecución: si alguien agrega una arista
// automática que forma ciclo o que no existe en la tabla, el proceso no arranca.
func init() {
	for origen, destino := range automaticas {
		if !EsTransicionValida(origen, destino) {
			panic(fmt.Sprintf("lifecycle: transición automática %s → %s no está en la tabla", origen, destino))
		}
	}
	for origen := range automaticas {
		visitados := map[Estado]bool{origen: true}
		actual := origen
		for {
			siguiente, ok := automaticas[actual]
			if !ok {
				break
			}
			if visitados[siguiente] {
				panic(fmt.Sprintf("lifecycle: ciclo en transiciones automáticas a partir de %s", origen))
			}
			visitados[siguiente] = true
			actual = siguiente
		}
	}
}
