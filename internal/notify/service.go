// Package notify keeps an in-memory activity feed derived from offer
// lifecycle events. The feed is advisory: losing it on restart is fine.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foodrescue_portal/internal/events"
	"foodrescue_portal/platform/apperr"
	"foodrescue_portal/platform/logger"

	"github.com/google/uuid"
)

// maxNotifications bounds the feed; the oldest entries are evicted first.
const maxNotifications = 100

// Category classifies a notification for the client.
type Category string

const (
	CategoryNewOffer     Category = "NEW_OFFER"
	CategoryStatusChange Category = "STATUS_CHANGE"
	CategoryOfferRemoved Category = "OFFER_REMOVED"
)

// Notification is one entry in the activity feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  Category  `json:"category"`
	OfferID   string    `json:"offerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// Service owns the bounded notification feed.
type Service struct {
	log *logger.Logger

	mu      sync.Mutex
	entries []Notification
}

// NewService creates an empty feed.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log}
}

// RegisterHandlers subscribes the feed to the offer lifecycle events.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.OfferCreated{}.EventName(), events.HandlerFunc(s.onOfferCreated))
	bus.Subscribe(events.OfferStatusChanged{}.EventName(), events.HandlerFunc(s.onStatusChanged))
	bus.Subscribe(events.OfferDeleted{}.EventName(), events.HandlerFunc(s.onOfferDeleted))
}

// List returns the feed, newest first.
func (s *Service) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, len(s.entries))
	for i, n := range s.entries {
		out[len(s.entries)-1-i] = n
	}
	return out
}

// UnreadCount returns how many notifications are unread.
func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Read = true
			return nil
		}
	}
	return apperr.NotFound("notification not found").WithOp("notify.mark_read")
}

// MarkAllRead marks every notification as read.
func (s *Service) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		s.entries[i].Read = true
	}
}

func (s *Service) add(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, n)
	if len(s.entries) > maxNotifications {
		s.entries = s.entries[len(s.entries)-maxNotifications:]
	}
}

func (s *Service) onOfferCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OfferCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	s.add(Notification{
		ID:        uuid.NewString(),
		Title:     "New donation offer",
		Body:      fmt.Sprintf("%s offered %d portions: %s", e.DonorName, e.Portions, e.Description),
		Category:  CategoryNewOffer,
		OfferID:   e.OfferID,
		CreatedAt: e.OccurredAt(),
	})
	return nil
}

func (s *Service) onStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OfferStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	s.add(Notification{
		ID:        uuid.NewString(),
		Title:     "Offer status updated",
		Body:      fmt.Sprintf("%q moved from %s to %s", e.Description, e.OldStatus, e.NewStatus),
		Category:  CategoryStatusChange,
		OfferID:   e.OfferID,
		CreatedAt: e.OccurredAt(),
	})
	return nil
}

func (s *Service) onOfferDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.OfferDeleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	s.add(Notification{
		ID:        uuid.NewString(),
		Title:     "Offer removed",
		Body:      "A donation offer was removed",
		Category:  CategoryOfferRemoved,
		OfferID:   e.OfferID,
		CreatedAt: e.OccurredAt(),
	})
	return nil
}
