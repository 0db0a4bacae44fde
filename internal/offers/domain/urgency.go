package domain

import (
	"fmt"
	"math"
	"time"
)

// Urgency grades how soon an offer must be collected. Derived from PickupBy
// against "now" on demand, never stored.
type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

const (
	urgentWithin = 4 * time.Hour
	soonWithin   = 12 * time.Hour
)

// OfferUrgency grades the offer's pickup deadline relative to now.
// Expired deadlines are HIGH: the food is still listed and needs attention.
func OfferUrgency(offer Offer, now time.Time) Urgency {
	remaining := offer.PickupBy.Sub(now)
	switch {
	case remaining <= urgentWithin:
		return UrgencyHigh
	case remaining <= soonWithin:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// TimeUntilPickup renders the remaining pickup window as a short label.
func TimeUntilPickup(offer Offer, now time.Time) string {
	hours := int(math.Ceil(offer.PickupBy.Sub(now).Hours()))
	switch {
	case hours <= 0:
		return "expired"
	case hours <= 1:
		return "less than 1h"
	case hours <= 24:
		return fmt.Sprintf("%dh left", hours)
	default:
		return fmt.Sprintf("%dd left", (hours+23)/24)
	}
}
