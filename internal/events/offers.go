package events

// Offer domain events, published by the lifecycle controller after the
// backend has committed the change. Consumers (the notification feed) must
// treat them as facts, not requests.

// OfferCreated is published when a new offer was accepted by the backend.
type OfferCreated struct {
	BaseEvent
	OfferID     string `json:"offerId"`
	DonorName   string `json:"donorName"`
	Description string `json:"description"`
	Portions    int    `json:"portions"`
}

func (e OfferCreated) EventName() string { return "offers.created" }

// OfferStatusChanged is published when a lifecycle action succeeded.
type OfferStatusChanged struct {
	BaseEvent
	OfferID     string `json:"offerId"`
	Description string `json:"description"`
	OldStatus   string `json:"oldStatus"`
	NewStatus   string `json:"newStatus"`
}

func (e OfferStatusChanged) EventName() string { return "offers.status_changed" }

// OfferDeleted is published when an offer was removed from the backend.
type OfferDeleted struct {
	BaseEvent
	OfferID string `json:"offerId"`
}

func (e OfferDeleted) EventName() string { return "offers.deleted" }
