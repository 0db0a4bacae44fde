package notify

import (
	"foodrescue_portal/internal/events"
	apphttp "foodrescue_portal/internal/http"
	"foodrescue_portal/platform/logger"
)

// Module wires the notification feed to the event bus and HTTP routes.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates the notify module and subscribes it to offer events.
func NewModule(bus events.Bus, log *logger.Logger) *Module {
	service := NewService(log)
	service.RegisterHandlers(bus)
	return &Module{
		service: service,
		handler: NewHandler(service),
	}
}

func (m *Module) Name() string {
	return "notify"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/notifications")
	group.GET("", m.handler.List)
	group.GET("/unread-count", m.handler.UnreadCount)
	group.POST("/:id/read", m.handler.MarkRead)
	group.POST("/read-all", m.handler.MarkAllRead)
}

var _ apphttp.Module = (*Module)(nil)
