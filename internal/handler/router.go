package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storent/internal/handler/api"
	"storent/internal/handler/middleware"
	"storent/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Status  *api.StatusHandler
	Rental  *api.RentalHandler
	Payment *api.PaymentHandler
	Access  *api.AccessHandler
	Catalog *api.CatalogHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// The gateway posts notifications server-to-server; the signature
		// check inside the use case is the authentication.
		apiGroup.POST("/payments/callback", h.Payment.Callback)

		// Relay controllers authenticate with a static device token.
		access := apiGroup.Group("/access")
		{
			access.GET("/check", middleware.RequireDeviceToken(cfg.Relay), h.Access.Check)

			accessAdmin := access.Group("")
			accessAdmin.Use(authMiddleware.RequireAuth())
			addRoutes(accessAdmin, []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: h.Access.Sweep},
			})
		}

		statuses := apiGroup.Group("/statuses")
		statuses.Use(authMiddleware.RequireAuth())
		{
			addRoutes(statuses, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Status.List},
				{Method: http.MethodPost, Path: "", Handler: h.Status.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Status.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Status.Delete},
			})
		}

		rentals := apiGroup.Group("/rentals")
		rentals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Rental.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Rental.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Rental.Get},
				{Method: http.MethodPost, Path: "/:id/extend", Handler: h.Rental.Extend},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Rental.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/close", Handler: h.Rental.Close},
				{Method: http.MethodGet, Path: "/:id/access", Handler: h.Access.ListByRental},
				{Method: http.MethodPost, Path: "/:id/access/recompute", Handler: h.Access.Recompute},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Payment.Init},
				{Method: http.MethodGet, Path: "", Handler: h.Payment.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Payment.Get},
			})
		}

		containers := apiGroup.Group("/containers")
		containers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(containers, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListContainers},
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateContainer},
			})
		}

		cells := apiGroup.Group("/cells")
		cells.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cells, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListCells},
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateCell},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetCell},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Catalog.UpdateCell},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeleteCell},
			})
		}

		relays := apiGroup.Group("/relays")
		relays.Use(authMiddleware.RequireAuth())
		{
			addRoutes(relays, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListRelays},
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateRelay},
				{Method: http.MethodGet, Path: "/:id/access", Handler: h.Access.ListByRelay},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
