package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstado(t *testing.T) {
	t.Run("acepta etiquetas canónicas", func(t *testing.T) {
		for _, e := range Estados {
			parsed, err := ParseEstado(string(e))
			require.NoError(t, err)
			assert.Equal(t, e, parsed)
		}
	})

	t.Run("rechaza variantes de UI", func(t *testing.T) {
		for _, s := range []string{
			"Listo para entrega",      // variante en masculino
			"Pendiente aprobación",    // sinónimo histórico
			"esperando diagnóstico",   // minúsculas
			"Esperando diagnostico",   // sin tilde
			"EnReparacion",
			"",
		} {
			_, err := ParseEstado(s)
			assert.Error(t, err, "debería rechazar %q", s)
		}
	})
}

func TestEsTransicionValida(t *testing.T) {
	casos := []struct {
		de, a  Estado
		valida bool
	}{
		{EstadoEsperandoDiagnostico, EstadoEnDiagnostico, true},
		{EstadoEnDiagnostico, EstadoDiagnosticoCompleto, true},
		{EstadoDiagnosticoCompleto, EstadoEsperandoAprobacion, true},
		// Atajo de mostrador: el cliente aprueba en el momento.
		{EstadoDiagnosticoCompleto, EstadoEnReparacion, true},
		{EstadoEsperandoAprobacion, EstadoEnReparacion, true},
		{EstadoEnReparacion, EstadoReparacionTerminada, true},
		{EstadoReparacionTerminada, EstadoListaParaEntrega, true},
		{EstadoListaParaEntrega, EstadoEnRecepcion, true},
		{EstadoEnRecepcion, EstadoPagadoYEntregado, true},

		// Saltos que no existen en la tabla
		{EstadoEsperandoDiagnostico, EstadoEnReparacion, false},
		{EstadoEnDiagnostico, EstadoListaParaEntrega, false},
		{EstadoEsperandoAprobacion, EstadoPagadoYEntregado, false},
		{EstadoListaParaEntrega, EstadoPagadoYEntregado, false},
		// Retrocesos
		{EstadoEnReparacion, EstadoEnDiagnostico, false},
		{EstadoPagadoYEntregado, EstadoEnRecepcion, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.valida, EsTransicionValida(c.de, c.a), "%s → %s", c.de, c.a)
	}
}

func TestEstadosTerminalesSinSalida(t *testing.T) {
	for _, terminal := range []Estado{EstadoPagadoYEntregado, EstadoCancelada} {
		require.True(t, EsTerminal(terminal))
		assert.Empty(t, SiguientesDesde(terminal), "%s no debe tener aristas salientes", terminal)
		for _, destino := range Estados {
			assert.False(t, EsTransicionValida(terminal, destino), "%s → %s", terminal, destino)
		}
	}
}

func TestCancelableDesdeTodoEstadoNoTerminal(t *testing.T) {
	for _, e := range Estados {
		if EsTerminal(e) {
			continue
		}
		assert.True(t, EsTransicionValida(e, EstadoCancelada), "desde %s", e)
	}
}

func TestSiguientesDesdeDevuelveCopia(t *testing.T) {
	primera := SiguientesDesde(EstadoEsperandoDiagnostico)
	require.NotEmpty(t, primera)
	primera[0] = EstadoCancelada
	segunda := SiguientesDesde(EstadoEsperandoDiagnostico)
	assert.Equal(t, EstadoEnDiagnostico, segunda[0], "mutar el resultado no debe tocar la tabla")
}

func TestSiguienteAutomatico(t *testing.T) {
	destino, ok := SiguienteAutomatico(EstadoReparacionTerminada)
	require.True(t, ok)
	assert.Equal(t, EstadoListaParaEntrega, destino)

	// "Lista para entrega → En recepción" es manual: check-in en mostrador.
	_, ok = SiguienteAutomatico(EstadoListaParaEntrega)
	assert.False(t, ok)

	// Ningún otro estado encadena.
	for _, e := range Estados {
		if e == EstadoReparacionTerminada {
			continue
		}
		_, ok := SiguienteAutomatico(e)
		assert.False(t, ok, "desde %s", e)
	}
}

// La cadena automática siempre termina: desde cualquier estado, seguir el
// resolver llega a un estado sin continuación en menos pasos que estados hay.
func TestCadenaAutomaticaTermina(t *testing.T) {
	for _, inicio := range Estados {
		actual := inicio
		for pasos := 0; ; pasos++ {
			require.LessOrEqual(t, pasos, len(Estados), "cadena desde %s no termina", inicio)
			siguiente, ok := SiguienteAutomatico(actual)
			if !ok {
				break
			}
			require.True(t, EsTransicionValida(actual, siguiente))
			actual = siguiente
		}
	}
}
