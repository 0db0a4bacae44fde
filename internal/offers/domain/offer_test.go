package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "backend zone-less layout",
			raw:  `"2026-01-15T18:00:00"`,
			want: time.Date(2026, 1, 15, 18, 0, 0, 0, time.Local),
		},
		{
			name: "rfc3339",
			raw:  `"2026-01-15T18:00:00Z"`,
			want: time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name: "null",
			raw:  `null`,
			want: time.Time{},
		},
		{
			name:    "garbage",
			raw:     `"not-a-time"`,
			wantErr: true,
		},
		{
			name:    "number",
			raw:     `1234`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tc.raw), &ts)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tc.want) {
				t.Errorf("got %v, want %v", ts.Time, tc.want)
			}
		})
	}
}

func TestOfferRoundTrip(t *testing.T) {
	raw := `{
		"id": "2e9c9a1f",
		"donorName": "Bakery Santa Clara",
		"donorContact": "+55 11 99999-0000",
		"description": "20 loaves of day-old bread",
		"portions": 20,
		"latitude": -23.55052,
		"longitude": -46.633308,
		"status": "AVAILABLE",
		"createdAt": "2026-01-15T10:00:00",
		"pickupBy": "2026-01-15T18:00:00"
	}`

	var offer Offer
	if err := json.Unmarshal([]byte(raw), &offer); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if offer.Status != StatusAvailable || offer.Portions != 20 {
		t.Fatalf("unexpected offer: %+v", offer)
	}

	out, err := json.Marshal(offer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Offer
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if !again.PickupBy.Equal(offer.PickupBy.Time) {
		t.Errorf("pickupBy drifted: %v vs %v", again.PickupBy, offer.PickupBy)
	}
}
