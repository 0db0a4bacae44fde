package domain

// Statistics is a derived, read-only snapshot of per-status offer counts.
// Invariant: Total equals the sum of the five per-status fields whenever the
// value was computed from a single consistent collection.
type Statistics struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	InTransit int `json:"inTransit"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// Aggregate derives statistics from a collection of offers in a single pass.
// Pure, deterministic, ordering-independent. An empty (or nil) collection
// yields the all-zero Statistics.
func Aggregate(offers []Offer) Statistics {
	stats := Statistics{Total: len(offers)}
	for _, offer := range offers {
		switch offer.Status {
		case StatusAvailable:
			stats.Available++
		case StatusReserved:
			stats.Reserved++
		case StatusInTransit:
			stats.InTransit++
		case StatusDelivered:
			stats.Delivered++
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// DeliveryRate returns the delivered share as a percentage. A zero-total
// snapshot yields 0, never NaN.
func (s Statistics) DeliveryRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Delivered) / float64(s.Total) * 100
}

// Consistent reports whether the sum invariant holds.
func (s Statistics) Consistent() bool {
	return s.Total == s.Available+s.Reserved+s.InTransit+s.Delivered+s.Cancelled
}
