// Package transport holds the wire DTOs shared by the offers handler,
// service, and backend client.
package transport

import (
	"time"

	"foodrescue_portal/internal/offers/domain"
)

// CreateOfferRequest is the client-supplied subset of an offer. The backend
// assigns id, status, and createdAt. Coordinates are pointers so a missing
// field is distinguishable from a legitimate zero (the equator exists).
type CreateOfferRequest struct {
	DonorName    string           `json:"donorName" binding:"required,notblank"`
	DonorContact string           `json:"donorContact" binding:"required,notblank"`
	Description  string           `json:"description" binding:"required,notblank"`
	Portions     int              `json:"portions" binding:"required,min=1"`
	Latitude     *float64         `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude    *float64         `json:"longitude" binding:"required,min=-180,max=180"`
	PickupBy     domain.Timestamp `json:"pickupBy" binding:"required"`
}

// ActionsQuery selects the status whose legal actions are requested.
type ActionsQuery struct {
	Status string `form:"status" binding:"required"`
}

// ListQuery carries the optional status filter for the collection view.
type ListQuery struct {
	Status string `form:"status"`
}

// MapOffer decorates an offer with its derived pickup urgency for the map view.
type MapOffer struct {
	domain.Offer
	Urgency  domain.Urgency `json:"urgency"`
	TimeLeft string         `json:"timeLeft"`
}

// NewMapOffer derives the map decoration for one offer.
func NewMapOffer(offer domain.Offer, now time.Time) MapOffer {
	return MapOffer{
		Offer:    offer,
		Urgency:  domain.OfferUrgency(offer, now),
		TimeLeft: domain.TimeUntilPickup(offer, now),
	}
}

// SnapshotResponse is the cached collection/statistics pair. Both members
// are always computed from the same refresh round trip.
type SnapshotResponse struct {
	Offers     []domain.Offer    `json:"offers"`
	Statistics domain.Statistics `json:"statistics"`
}

// ActionResult reports a lifecycle mutation outcome. Warning is set when the
// mutation committed but the follow-up refresh failed, leaving stale cached
// data until the user retries.
type ActionResult struct {
	Offer   domain.Offer `json:"offer"`
	Warning string       `json:"warning,omitempty"`
}
