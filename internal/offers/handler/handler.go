// Package handler exposes the offer endpoints consumed by the portal views.
package handler

import (
	"net/http"
	"time"

	"foodrescue_portal/internal/offers/domain"
	"foodrescue_portal/internal/offers/service"
	"foodrescue_portal/internal/offers/transport"
	"foodrescue_portal/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler wires the lifecycle controller to HTTP.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /offers?status=. It serves the cached collection view,
// loading it lazily on first access.
func (h *Handler) List(c *gin.Context) {
	var q transport.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query", nil)
		return
	}

	filter, err := domain.ParseStatusFilter(q.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	if err := h.svc.EnsureLoaded(c.Request.Context()); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, h.svc.Filter(filter))
}

// Snapshot handles GET /offers/stats: the cached collection/statistics pair.
func (h *Handler) Snapshot(c *gin.Context) {
	if err := h.svc.EnsureLoaded(c.Request.Context()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, h.svc.Snapshot())
}

// MapView handles GET /offers/map: cached offers with derived pickup urgency.
func (h *Handler) MapView(c *gin.Context) {
	if err := h.svc.EnsureLoaded(c.Request.Context()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, h.svc.MapView(time.Now()))
}

// Actions handles GET /offers/actions?status=: the legal transitions for a
// status, in presentation order.
func (h *Handler) Actions(c *gin.Context) {
	var q transport.ActionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'status' is required", nil)
		return
	}

	status := domain.Status(q.Status)
	if !status.Valid() {
		httpkit.Error(c, http.StatusBadRequest, "unknown status", nil)
		return
	}

	httpkit.OK(c, domain.AvailableActions(status))
}

// Get handles GET /offers/:id.
func (h *Handler) Get(c *gin.Context) {
	offer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, offer)
}

// Create handles POST /offers.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid offer payload", err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if created.ID != "" {
			// Committed server-side; only the refresh failed.
			httpkit.Created(c, transport.ActionResult{Offer: created, Warning: err.Error()})
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ActionResult{Offer: created})
}

// ApplyAction handles POST /offers/:id/actions/:action.
func (h *Handler) ApplyAction(c *gin.Context) {
	action := domain.Action(c.Param("action"))
	if !action.Valid() {
		httpkit.Error(c, http.StatusBadRequest, "unknown action", nil)
		return
	}

	updated, err := h.svc.ApplyAction(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		if updated.ID != "" {
			// The mutation is committed; never report it as rolled back.
			httpkit.OK(c, transport.ActionResult{Offer: updated, Warning: err.Error()})
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ActionResult{Offer: updated})
}

// Delete handles DELETE /offers/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// Refresh handles POST /offers/refresh: the manual retry path after a
// reported refresh failure.
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, h.svc.Snapshot())
}
