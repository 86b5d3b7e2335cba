package bootstrap

import (
	"storent/internal/infra/gateway"
	"storent/internal/pkg/config"
	"storent/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return gateway.NewTinkoffGateway(cfg.Gateway)
}
