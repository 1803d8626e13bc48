package infra

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// MercadoPagoVerifier consulta el estado real de una transacción en la API de
// Mercado Pago antes de asentarla como pago de una orden. Con accessToken
// vacío no se construye (los servicios tratan nil como "sin verificación").
type MercadoPagoVerifier struct {
	payments payment.Client
}

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: config: %w", err)
	}
	return &MercadoPagoVerifier{payments: payment.NewClient(cfg)}, nil
}

// VerificarAprobado devuelve nil solo si la transacción existe y está aprobada.
func (v *MercadoPagoVerifier) VerificarAprobado(ctx context.Context, referencia string) error {
	id, err := strconv.Atoi(referencia)
	if err != nil {
		return fmt.Errorf("mercadopago: referencia %q no es un id de pago", referencia)
	}
	resource, err := v.payments.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("mercadopago: consulta de pago %d: %w", id, err)
	}
	if resource.Status != "approved" {
		return fmt.Errorf("mercadopago: el pago %d está %q, no aprobado", id, resource.Status)
	}
	return nil
}
