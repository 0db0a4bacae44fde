package notify

import (
	"context"
	"fmt"
	"testing"

	"foodrescue_portal/internal/events"
	"foodrescue_portal/platform/apperr"
	"foodrescue_portal/platform/logger"
)

func newTestService(t *testing.T) (*Service, events.Bus) {
	t.Helper()
	svc := NewService(logger.New("development"))
	bus := events.NewInMemoryBus(logger.New("development"))
	svc.RegisterHandlers(bus)
	return svc, bus
}

func TestFeedCollectsOfferEvents(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	mustPublish(t, bus, ctx, events.OfferCreated{
		BaseEvent:   events.NewBaseEvent(),
		OfferID:     "1",
		DonorName:   "Padaria Central",
		Description: "Bread and pastries",
		Portions:    12,
	})
	mustPublish(t, bus, ctx, events.OfferStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		OfferID:     "1",
		Description: "Bread and pastries",
		OldStatus:   "AVAILABLE",
		NewStatus:   "RESERVED",
	})
	mustPublish(t, bus, ctx, events.OfferDeleted{
		BaseEvent: events.NewBaseEvent(),
		OfferID:   "2",
	})

	feed := svc.List()
	if len(feed) != 3 {
		t.Fatalf("feed has %d entries, want 3", len(feed))
	}
	// Newest first.
	if feed[0].Category != CategoryOfferRemoved {
		t.Errorf("feed[0].Category = %s, want OFFER_REMOVED", feed[0].Category)
	}
	if feed[2].Category != CategoryNewOffer {
		t.Errorf("feed[2].Category = %s, want NEW_OFFER", feed[2].Category)
	}
	if feed[2].OfferID != "1" || feed[2].Body == "" {
		t.Errorf("created notification incomplete: %+v", feed[2])
	}
	if svc.UnreadCount() != 3 {
		t.Errorf("UnreadCount = %d, want 3", svc.UnreadCount())
	}
}

func TestMarkRead(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	mustPublish(t, bus, ctx, events.OfferDeleted{BaseEvent: events.NewBaseEvent(), OfferID: "1"})
	mustPublish(t, bus, ctx, events.OfferDeleted{BaseEvent: events.NewBaseEvent(), OfferID: "2"})

	feed := svc.List()
	if err := svc.MarkRead(feed[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if svc.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1", svc.UnreadCount())
	}

	err := svc.MarkRead("no-such-id")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("MarkRead unknown id: kind = %v, want KindNotFound", apperr.GetKind(err))
	}

	svc.MarkAllRead()
	if svc.UnreadCount() != 0 {
		t.Errorf("UnreadCount after MarkAllRead = %d, want 0", svc.UnreadCount())
	}
}

func TestFeedIsBounded(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	for i := 0; i < maxNotifications+25; i++ {
		mustPublish(t, bus, ctx, events.OfferDeleted{
			BaseEvent: events.NewBaseEvent(),
			OfferID:   fmt.Sprintf("%d", i),
		})
	}

	feed := svc.List()
	if len(feed) != maxNotifications {
		t.Fatalf("feed has %d entries, want %d", len(feed), maxNotifications)
	}
	// The newest event survives eviction; the oldest are gone.
	if feed[0].OfferID != fmt.Sprintf("%d", maxNotifications+24) {
		t.Errorf("newest entry = %s", feed[0].OfferID)
	}
	if feed[len(feed)-1].OfferID != "25" {
		t.Errorf("oldest surviving entry = %s, want 25", feed[len(feed)-1].OfferID)
	}
}

func mustPublish(t *testing.T, bus events.Bus, ctx context.Context, event events.Event) {
	t.Helper()
	if err := bus.PublishSync(ctx, event); err != nil {
		t.Fatalf("publish %s: %v", event.EventName(), err)
	}
}
