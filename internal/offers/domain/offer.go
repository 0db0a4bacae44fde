// Package domain holds the offer vocabulary shared by every portal
// component: the offer model, its status lifecycle, derived statistics,
// and the collection view helpers. Everything here is pure value logic;
// the rescue backend remains the authority for all state.
package domain

import (
	"fmt"
	"time"
)

// Status is the closed offer lifecycle enumeration.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusReserved, StatusInTransit, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle actions exist for s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// backendTimeLayout is the zone-less ISO form the rescue backend emits.
const backendTimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time to match the backend wire format, which sends
// local date-times without a zone offset. RFC 3339 input is accepted too.
type Timestamp struct {
	time.Time
}

// NewTimestamp builds a Timestamp from a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON parses either RFC 3339 or the backend's zone-less layout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", raw)
	}
	value := raw[1 : len(raw)-1]

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(backendTimeLayout, value, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON emits the backend's zone-less layout.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(backendTimeLayout) + `"`), nil
}

// Offer is a single donation listing. The ID, status, and creation time are
// assigned by the backend; the portal never fabricates them.
type Offer struct {
	ID           string    `json:"id"`
	DonorName    string    `json:"donorName"`
	DonorContact string    `json:"donorContact"`
	Description  string    `json:"description"`
	Portions     int       `json:"portions"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Status       Status    `json:"status"`
	CreatedAt    Timestamp `json:"createdAt"`
	PickupBy     Timestamp `json:"pickupBy"`
}
