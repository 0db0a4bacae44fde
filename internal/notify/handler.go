package notify

import (
	"foodrescue_portal/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the notification feed endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /notifications.
func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, h.service.List())
}

// UnreadCount handles GET /notifications/unread-count.
func (h *Handler) UnreadCount(c *gin.Context) {
	httpkit.OK(c, gin.H{"unread": h.service.UnreadCount()})
}

// MarkRead handles POST /notifications/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *Handler) MarkAllRead(c *gin.Context) {
	h.service.MarkAllRead()
	httpkit.NoContent(c)
}
