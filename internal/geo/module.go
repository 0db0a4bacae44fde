package geo

import (
	apphttp "foodrescue_portal/internal/http"
)

// Module wires the location acquisition HTTP routes.
type Module struct {
	handler  *Handler
	geocoder *Geocoder
	picker   *Picker
}

// NewModule creates the geo module around a shared geocoder. The picker is
// the single widget-state owner serving the location endpoints.
func NewModule(geocoder *Geocoder) *Module {
	picker := NewPicker(geocoder)
	return &Module{
		handler:  NewHandler(geocoder, picker),
		geocoder: geocoder,
		picker:   picker,
	}
}

func (m *Module) Name() string {
	return "geo"
}

// Geocoder returns the shared geocoder for composition-root use.
func (m *Module) Geocoder() *Geocoder {
	return m.geocoder
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/location")
	group.GET("/capability", m.handler.Capability)
	group.GET("/state", m.handler.State)
	group.GET("/search", m.handler.Search)
	group.POST("/current", m.handler.Current)
}

var _ apphttp.Module = (*Module)(nil)
