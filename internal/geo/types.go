// Package geo provides the location acquisition subsystem: forward and
// reverse geocoding through Nominatim when a contact credential is
// configured, and a deterministic coordinate-string fallback otherwise.
package geo

import (
	"fmt"
	"time"

	"foodrescue_portal/platform/apperr"
)

// LocationResult is a resolved location fed into offer creation and map
// display. Address may be a formatted coordinate string when no geocoding
// service is available.
type LocationResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	PlaceID   string  `json:"placeId,omitempty"`
}

// SearchRequest represents the address lookup query parameters.
type SearchRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// PositionRequest carries a browser-reported device fix. ObservedAt is the
// geolocation API's position timestamp; when present, fixes older than the
// freshness window are rejected.
type PositionRequest struct {
	Latitude   *float64   `json:"latitude" binding:"required"`
	Longitude  *float64   `json:"longitude" binding:"required"`
	ObservedAt *time.Time `json:"observedAt"`
}

// StateResponse reports the widget acquisition state and, once resolved,
// the last location.
type StateResponse struct {
	State      AcquisitionState `json:"state"`
	LastResult *LocationResult  `json:"lastResult,omitempty"`
}

// CapabilityResponse exposes the geocoding capability flag, resolved once
// at startup rather than re-derived per view.
type CapabilityResponse struct {
	GeocodingEnabled bool `json:"geocodingEnabled"`
}

// FormatCoordinates renders a position as the fixed-precision fallback
// address used whenever no geocoding capability is available.
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

// ValidateCoordinates checks the geographic ranges shared with the offer
// contract. Manual numeric entry goes through this same check.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return apperr.Validation(fmt.Sprintf("latitude %v out of range [-90, 90]", lat))
	}
	if lng < -180 || lng > 180 {
		return apperr.Validation(fmt.Sprintf("longitude %v out of range [-180, 180]", lng))
	}
	return nil
}

// nominatimResult mirrors the relevant parts of the OSM payloads.
type nominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
