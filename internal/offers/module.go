// Package offers provides the offer bounded context: the lifecycle
// controller, the backend REST client, and the portal's offer endpoints.
package offers

import (
	"foodrescue_portal/internal/config"
	"foodrescue_portal/internal/events"
	apphttp "foodrescue_portal/internal/http"
	"foodrescue_portal/internal/offers/client"
	"foodrescue_portal/internal/offers/handler"
	"foodrescue_portal/internal/offers/service"
	"foodrescue_portal/platform/logger"
	"foodrescue_portal/platform/validator"
)

// Module is the offers bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the offers module.
func NewModule(cfg *config.Config, val *validator.Validator, bus events.Bus, log *logger.Logger) *Module {
	backend := client.New(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	svc := service.New(backend, val, bus, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "offers"
}

// Service returns the lifecycle controller for composition-root use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts offer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/offers")
	group.GET("", m.handler.List)
	group.GET("/stats", m.handler.Snapshot)
	group.GET("/map", m.handler.MapView)
	group.GET("/actions", m.handler.Actions)
	group.POST("", m.handler.Create)
	group.POST("/refresh", m.handler.Refresh)
	group.GET("/:id", m.handler.Get)
	group.POST("/:id/actions/:action", m.handler.ApplyAction)
	group.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
