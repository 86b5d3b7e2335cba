package commands

import "context"

type GatewayInitRequest struct {
	OrderID     string
	AmountCents int64
	Description string
}

type GatewayInitResult struct {
	GatewayPaymentID string
	PaymentURL       string
	Status           string
}

// PaymentGateway is the acquiring provider port. VerifyNotification checks
// the canonical signature token of a callback; it must reject the payload
// before any state is touched.
type PaymentGateway interface {
	Init(ctx context.Context, req GatewayInitRequest) (*GatewayInitResult, error)
	VerifyNotification(params map[string]string) bool
}
