package domain

import (
	"fmt"
	"strings"

	"foodrescue_portal/platform/apperr"
)

// StatusFilter selects offers by status for display. StatusFilterAll is a
// sentinel distinct from every Status value meaning "no filtering".
type StatusFilter string

// StatusFilterAll disables filtering.
const StatusFilterAll StatusFilter = "ALL"

// ParseStatusFilter normalizes raw user input into a StatusFilter.
// Empty input means "no filtering".
func ParseStatusFilter(raw string) (StatusFilter, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" || normalized == string(StatusFilterAll) {
		return StatusFilterAll, nil
	}
	if !Status(normalized).Valid() {
		return "", apperr.BadRequest(fmt.Sprintf("unknown status filter %q", raw))
	}
	return StatusFilter(normalized), nil
}

// Matches reports whether an offer with the given status passes the filter.
func (f StatusFilter) Matches(status Status) bool {
	return f == StatusFilterAll || Status(f) == status
}

// FilterByStatus returns the offers passing the filter, preserving the
// original relative order. The input is never mutated; the result is always
// a fresh slice.
func FilterByStatus(offers []Offer, filter StatusFilter) []Offer {
	out := make([]Offer, 0, len(offers))
	for _, offer := range offers {
		if filter.Matches(offer.Status) {
			out = append(out, offer)
		}
	}
	return out
}
