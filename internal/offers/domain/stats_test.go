package domain

import "testing"

func offersWithStatuses(statuses ...Status) []Offer {
	offers := make([]Offer, len(statuses))
	for i, s := range statuses {
		offers[i] = Offer{ID: string(rune('a' + i)), Status: s}
	}
	return offers
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Statistics
	}{
		{
			name:     "empty collection yields all zeros",
			statuses: nil,
			want:     Statistics{},
		},
		{
			name:     "dashboard scenario",
			statuses: []Status{StatusAvailable, StatusAvailable, StatusReserved, StatusDelivered, StatusCancelled},
			want:     Statistics{Total: 5, Available: 2, Reserved: 1, Delivered: 1, Cancelled: 1},
		},
		{
			name:     "single in-transit",
			statuses: []Status{StatusInTransit},
			want:     Statistics{Total: 1, InTransit: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offers := offersWithStatuses(tc.statuses...)
			got := Aggregate(offers)
			if got != tc.want {
				t.Fatalf("Aggregate() = %+v, want %+v", got, tc.want)
			}
			if got.Total != len(offers) {
				t.Errorf("Total = %d, want %d", got.Total, len(offers))
			}
			if !got.Consistent() {
				t.Errorf("sum invariant violated: %+v", got)
			}

			// Pure function: a second pass must agree with the first.
			if again := Aggregate(offers); again != got {
				t.Errorf("Aggregate is not idempotent: %+v vs %+v", again, got)
			}
		})
	}
}

func TestDeliveryRate(t *testing.T) {
	zero := Statistics{}
	if rate := zero.DeliveryRate(); rate != 0 {
		t.Errorf("DeliveryRate on zero total = %v, want 0", rate)
	}

	stats := Aggregate(offersWithStatuses(StatusAvailable, StatusAvailable, StatusReserved, StatusDelivered, StatusCancelled))
	if rate := stats.DeliveryRate(); rate != 20.0 {
		t.Errorf("DeliveryRate = %v, want 20.0", rate)
	}
}
