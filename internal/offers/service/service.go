// Package service implements the offer lifecycle controller: it sequences
// status-changing actions against the rescue backend and keeps the locally
// cached collection and statistics consistent with the server's view.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foodrescue_portal/internal/events"
	"foodrescue_portal/internal/offers/domain"
	"foodrescue_portal/internal/offers/transport"
	"foodrescue_portal/platform/apperr"
	"foodrescue_portal/platform/logger"
	"foodrescue_portal/platform/validator"

	playground "github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Backend is the rescue backend surface the controller depends on.
// Implemented by the REST client; faked in tests.
type Backend interface {
	List(ctx context.Context) ([]domain.Offer, error)
	Get(ctx context.Context, id string) (domain.Offer, error)
	Create(ctx context.Context, req transport.CreateOfferRequest) (domain.Offer, error)
	ApplyAction(ctx context.Context, id string, action domain.Action) (domain.Offer, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.Statistics, error)
}

// Service owns the transient cached copy of the offer collection and the
// statistics snapshot. The cache is replaced wholesale on every refresh;
// consumers never observe a collection/statistics pair from two different
// points in time. All mutation flows through this single entry point.
type Service struct {
	backend Backend
	val     *validator.Validator
	bus     events.Bus
	log     *logger.Logger

	mu     sync.RWMutex
	offers []domain.Offer
	stats  domain.Statistics
	loaded bool
}

// New creates the lifecycle controller.
func New(backend Backend, val *validator.Validator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		backend: backend,
		val:     val,
		bus:     bus,
		log:     log,
	}
}

// Refresh re-fetches the full collection and statistics from the backend and
// swaps the cached pair atomically. The two reads run concurrently. On any
// failure the previously cached data is left untouched.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		offers []domain.Offer
		stats  domain.Statistics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := s.backend.List(gctx)
		if err != nil {
			return err
		}
		offers = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.backend.Stats(gctx)
		if err != nil {
			return err
		}
		stats = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.offers = offers
	s.stats = stats
	s.loaded = true
	s.mu.Unlock()

	s.log.CacheRefreshed(len(offers), stats.Total)
	return nil
}

// EnsureLoaded performs the initial fetch if no snapshot exists yet.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

// Snapshot returns a consistent copy of the cached collection and statistics.
func (s *Service) Snapshot() transport.SnapshotResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offers := make([]domain.Offer, len(s.offers))
	copy(offers, s.offers)
	return transport.SnapshotResponse{Offers: offers, Statistics: s.stats}
}

// Filter returns the cached offers passing the status filter, in their
// original order.
func (s *Service) Filter(filter domain.StatusFilter) []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterByStatus(s.offers, filter)
}

// Get fetches one offer directly from the backend.
func (s *Service) Get(ctx context.Context, id string) (domain.Offer, error) {
	return s.backend.Get(ctx, id)
}

// ApplyAction validates the action against the offer's last-known status,
// invokes the backend mutation, and refreshes the cache.
//
// A non-nil error together with a non-empty offer ID means the mutation was
// committed server-side but the follow-up refresh failed: the cached data is
// stale, not wrong, and the caller should report a refresh failure rather
// than a rollback.
func (s *Service) ApplyAction(ctx context.Context, id string, action domain.Action) (domain.Offer, error) {
	current, err := s.lastKnownStatus(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}

	// Defense in depth: reject locally before any mutation call. The
	// backend remains the authority and re-checks on its side.
	if _, err := domain.CanApply(current, action); err != nil {
		return domain.Offer{}, err
	}

	updated, err := s.backend.ApplyAction(ctx, id, action)
	if err != nil {
		return domain.Offer{}, err
	}

	s.publish(ctx, events.OfferStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		OfferID:     updated.ID,
		Description: updated.Description,
		OldStatus:   string(current),
		NewStatus:   string(updated.Status),
	})

	if err := s.Refresh(ctx); err != nil {
		return updated, apperr.Upstream("status updated but cache refresh failed; displayed data may be stale", err).WithOp("offers.refresh")
	}
	return updated, nil
}

// Create validates the request against the offer contract and submits it.
// Validation failures are rejected before any network call. The partial
// failure semantics match ApplyAction.
func (s *Service) Create(ctx context.Context, req transport.CreateOfferRequest) (domain.Offer, error) {
	if err := s.validateCreate(req); err != nil {
		return domain.Offer{}, err
	}

	created, err := s.backend.Create(ctx, req)
	if err != nil {
		return domain.Offer{}, err
	}

	s.publish(ctx, events.OfferCreated{
		BaseEvent:   events.NewBaseEvent(),
		OfferID:     created.ID,
		DonorName:   created.DonorName,
		Description: created.Description,
		Portions:    created.Portions,
	})

	if err := s.Refresh(ctx); err != nil {
		return created, apperr.Upstream("offer created but cache refresh failed; displayed data may be stale", err).WithOp("offers.refresh")
	}
	return created, nil
}

// Delete removes the offer from the backend and refreshes the cache. A
// failed refresh after a committed delete is logged, not surfaced: the next
// user-triggered refresh reconciles.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.OfferDeleted{
		BaseEvent: events.NewBaseEvent(),
		OfferID:   id,
	})

	if err := s.Refresh(ctx); err != nil {
		s.log.UpstreamError("rescue-backend", "refresh after delete", err)
	}
	return nil
}

// MapView decorates the cached offers with pickup urgency.
func (s *Service) MapView(now time.Time) []transport.MapOffer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]transport.MapOffer, 0, len(s.offers))
	for _, offer := range s.offers {
		out = append(out, transport.NewMapOffer(offer, now))
	}
	return out
}

func (s *Service) lastKnownStatus(ctx context.Context, id string) (domain.Status, error) {
	s.mu.RLock()
	for _, offer := range s.offers {
		if offer.ID == id {
			s.mu.RUnlock()
			return offer.Status, nil
		}
	}
	s.mu.RUnlock()

	// Not cached (direct link, or cache never loaded): a read is allowed
	// before the legality check, only mutations are gated.
	offer, err := s.backend.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return offer.Status, nil
}

func (s *Service) validateCreate(req transport.CreateOfferRequest) error {
	if err := s.val.Struct(req); err != nil {
		if fieldErrs, ok := err.(playground.ValidationErrors); ok {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return apperr.Validation("offer does not satisfy the creation contract").WithDetails(details).WithOp("offers.create")
		}
		return apperr.Validation(err.Error()).WithOp("offers.create")
	}

	if !req.PickupBy.After(time.Now()) {
		return apperr.Validation("pickupBy must be in the future").WithOp("offers.create")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}
