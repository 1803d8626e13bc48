package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppClient habla con el gateway HTTP de WhatsApp (servicio aparte que
// mantiene la sesión con el proveedor). El backend solo postea mensajes; el
// circuit breaker de quien lo llama aísla al motor de un gateway caído.
type WhatsAppClient struct {
	gatewayURL string
	httpClient *http.Client
}

func NewWhatsAppClient(gatewayURL string) *WhatsAppClient {
	return &WhatsAppClient{
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsappMensaje struct {
	Telefono string `json:"telefono"`
	Mensaje  string `json:"mensaje"`
}

// EnviarMensaje postea un mensaje de texto al gateway.
func (c *WhatsAppClient) EnviarMensaje(ctx context.Context, telefono, mensaje string) error {
	body, err := json.Marshal(whatsappMensaje{Telefono: telefono, Mensaje: mensaje})
	if err != nil {
		return fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/mensajes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("whatsapp: gateway returned %d", resp.StatusCode)
	}
	return nil
}
