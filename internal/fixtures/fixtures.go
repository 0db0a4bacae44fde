// Package fixtures ships the demo dataset used by the seeding command and
// by local development. The data lives in one embedded YAML file instead of
// being repeated wherever a demo offer is needed.
package fixtures

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed offers.yaml
var offersYAML []byte

// SeedOffer is one demo donation offer. Coordinates may be omitted when an
// address is present; the seeder geocodes those if the capability is
// configured.
type SeedOffer struct {
	DonorName     string   `yaml:"donorName"`
	DonorContact  string   `yaml:"donorContact"`
	Description   string   `yaml:"description"`
	Portions      int      `yaml:"portions"`
	Address       string   `yaml:"address,omitempty"`
	Latitude      *float64 `yaml:"latitude,omitempty"`
	Longitude     *float64 `yaml:"longitude,omitempty"`
	PickupInHours int      `yaml:"pickupInHours"`
}

// PickupBy derives the pickup deadline relative to now.
func (s SeedOffer) PickupBy(now time.Time) time.Time {
	return now.Add(time.Duration(s.PickupInHours) * time.Hour)
}

// Load parses the embedded demo offers.
func Load() ([]SeedOffer, error) {
	var doc struct {
		Offers []SeedOffer `yaml:"offers"`
	}
	if err := yaml.Unmarshal(offersYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded offers: %w", err)
	}
	if len(doc.Offers) == 0 {
		return nil, fmt.Errorf("embedded offers file is empty")
	}
	for i, offer := range doc.Offers {
		if offer.DonorName == "" || offer.Description == "" {
			return nil, fmt.Errorf("offer %d: donorName and description are required", i)
		}
		if offer.Portions < 1 {
			return nil, fmt.Errorf("offer %d: portions must be at least 1", i)
		}
		if offer.Address == "" && (offer.Latitude == nil || offer.Longitude == nil) {
			return nil, fmt.Errorf("offer %d: needs an address or coordinates", i)
		}
		if offer.PickupInHours < 1 {
			return nil, fmt.Errorf("offer %d: pickupInHours must be at least 1", i)
		}
	}
	return doc.Offers, nil
}
