// Command offer-seed loads the embedded demo dataset into the rescue
// backend. Fixture entries carrying only an address are geocoded first,
// which requires the geocoding capability to be configured.
package main

import (
	"context"
	"os"
	"time"

	"foodrescue_portal/internal/config"
	"foodrescue_portal/internal/fixtures"
	"foodrescue_portal/internal/geo"
	"foodrescue_portal/internal/offers/client"
	"foodrescue_portal/internal/offers/domain"
	"foodrescue_portal/internal/offers/transport"
	"foodrescue_portal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	seeds, err := fixtures.Load()
	if err != nil {
		log.Error("failed to load demo offers", "error", err)
		os.Exit(1)
	}

	backend := client.New(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	geocoder := geo.NewGeocoder(cfg.GeocodeBaseURL, cfg.GeocodeContact, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Seeding is idempotent: a backend that already lists available offers
	// is left alone.
	existing, err := backend.ListAvailable(ctx)
	if err != nil {
		log.Error("failed to check existing offers", "error", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		log.Info("backend already has available offers, nothing to seed", "count", len(existing))
		return
	}

	now := time.Now()
	created, skipped := 0, 0
	for _, seed := range seeds {
		lat, lng, ok := resolveCoordinates(ctx, geocoder, seed, log)
		if !ok {
			skipped++
			continue
		}

		offer, err := backend.Create(ctx, transport.CreateOfferRequest{
			DonorName:    seed.DonorName,
			DonorContact: seed.DonorContact,
			Description:  seed.Description,
			Portions:     seed.Portions,
			Latitude:     &lat,
			Longitude:    &lng,
			PickupBy:     domain.NewTimestamp(seed.PickupBy(now)),
		})
		if err != nil {
			log.Error("failed to create offer", "donor", seed.DonorName, "error", err)
			skipped++
			continue
		}
		log.Info("offer created", "id", offer.ID, "donor", offer.DonorName, "portions", offer.Portions)
		created++
	}

	log.Info("seeding finished", "created", created, "skipped", skipped)
	if created == 0 {
		os.Exit(1)
	}
}

// resolveCoordinates returns the fixture's coordinates, geocoding the
// address when no explicit pair is present.
func resolveCoordinates(ctx context.Context, geocoder *geo.Geocoder, seed fixtures.SeedOffer, log *logger.Logger) (float64, float64, bool) {
	if seed.Latitude != nil && seed.Longitude != nil {
		return *seed.Latitude, *seed.Longitude, true
	}
	if !geocoder.Enabled() {
		log.Warn("skipping address-only offer, geocoding disabled", "donor", seed.DonorName, "address", seed.Address)
		return 0, 0, false
	}

	results, err := geocoder.Search(ctx, seed.Address)
	if err != nil {
		log.Error("geocoding failed", "address", seed.Address, "error", err)
		return 0, 0, false
	}
	if len(results) == 0 {
		log.Warn("address not found", "address", seed.Address)
		return 0, 0, false
	}
	return results[0].Latitude, results[0].Longitude, true
}
