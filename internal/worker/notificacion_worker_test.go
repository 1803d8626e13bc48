package worker

import (
	"testing"

	"repairsuite/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlantilla(t *testing.T) {
	payload := NotificacionPayload{
		Evento:         model.EventoListoParaEntrega,
		Folio:          "OS-000042",
		ClienteNombre:  "Marta Juárez",
		EquipoEtiqueta: "laptop Dell Inspiron 15",
		Estado:         "Lista para entrega",
		Monto:          "450.50",
		Saldo:          "150.50",
	}

	cuerpo := renderPlantilla(
		"Hola {{cliente}}, tu {{equipo}} ({{folio}}) está {{estado}}. Total ${{monto}}, saldo ${{saldo}}.",
		payload,
	)
	assert.Equal(t,
		"Hola Marta Juárez, tu laptop Dell Inspiron 15 (OS-000042) está Lista para entrega. Total $450.50, saldo $150.50.",
		cuerpo,
	)

	t.Run("placeholder desconocido queda intacto", func(t *testing.T) {
		assert.Equal(t, "Hola {{sucursal}}", renderPlantilla("Hola {{sucursal}}", payload))
	})

	t.Run("sin placeholders es identidad", func(t *testing.T) {
		assert.Equal(t, "Su equipo está listo", renderPlantilla("Su equipo está listo", payload))
	})
}

func TestEventoValido(t *testing.T) {
	for _, evento := range []string{
		model.EventoOSCreada,
		model.EventoListoParaEntrega,
		model.EventoCotizacion,
		model.EventoPagoRecibido,
		model.EventoRecordatorio,
	} {
		assert.True(t, eventoValido(evento), evento)
	}

	assert.False(t, eventoValido("orden_eliminada"))
	assert.False(t, eventoValido(""))
}
