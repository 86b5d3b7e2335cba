package components

import (
	"storent/internal/handler"
	"storent/internal/handler/api"
	"storent/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewStatusHandler,
		api.NewRentalHandler,
		api.NewPaymentHandler,
		api.NewAccessHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	status *api.StatusHandler,
	rental *api.RentalHandler,
	payment *api.PaymentHandler,
	access *api.AccessHandler,
	catalog *api.CatalogHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Status:  status,
		Rental:  rental,
		Payment: payment,
		Access:  access,
		Catalog: catalog,
	}
}
