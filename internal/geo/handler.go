package geo

import (
	"context"
	"net/http"

	"foodrescue_portal/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the location endpoints. All acquisition and search flows
// go through the picker so its timeout, staleness, and supersede rules
// apply to the served surface.
type Handler struct {
	geocoder *Geocoder
	picker   *Picker
}

func NewHandler(geocoder *Geocoder, picker *Picker) *Handler {
	return &Handler{geocoder: geocoder, picker: picker}
}

// Capability handles GET /location/capability.
func (h *Handler) Capability(c *gin.Context) {
	httpkit.OK(c, CapabilityResponse{GeocodingEnabled: h.geocoder.Enabled()})
}

// State handles GET /location/state.
func (h *Handler) State(c *gin.Context) {
	resp := StateResponse{State: h.picker.State()}
	if last, ok := h.picker.Last(); ok {
		resp.LastResult = &last
	}
	httpkit.OK(c, resp)
}

// Search handles GET /location/search?q=... The lookup is debounced; a
// request superseded by newer input answers 204 with no body.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, superseded, err := h.picker.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	if superseded {
		httpkit.NoContent(c)
		return
	}
	httpkit.OK(c, results)
}

// Current handles POST /location/current. The browser reports the device
// fix; the picker validates freshness and range, then resolves it to an
// address or the coordinate-string fallback.
func (h *Handler) Current(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "latitude and longitude are required", nil)
		return
	}

	source := PositionFunc(func(ctx context.Context) (Position, error) {
		pos := Position{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if req.ObservedAt != nil {
			pos.ObservedAt = *req.ObservedAt
		}
		return pos, nil
	})

	result, err := h.picker.CurrentLocation(c.Request.Context(), source)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
