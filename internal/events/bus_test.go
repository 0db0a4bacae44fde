package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"foodrescue_portal/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncDispatchesToAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var calls []string
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return nil
	}))
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	}))
	bus.Subscribe("things.other", HandlerFunc(func(ctx context.Context, e Event) error {
		calls = append(calls, "unrelated")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "things.happened"})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v", calls)
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	failure := errors.New("handler broke")
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		return failure
	}))
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "things.happened"})
	if !errors.Is(err, failure) {
		t.Errorf("PublishSync error = %v, want wrapped handler error", err)
	}
}

func TestPublishIsAsynchronousAndPanicSafe(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(2)
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		defer wg.Done()
		panic("boom")
	}))

	var got Event
	bus.Subscribe("things.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		defer wg.Done()
		got = e
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "things.happened"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handlers did not run")
	}
	if got == nil || got.EventName() != "things.happened" {
		t.Errorf("second handler received %v despite first panicking", got)
	}
}

func TestPublishWithNoHandlersIsHarmless(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "nobody.listens"})
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "nobody.listens"}); err != nil {
		t.Errorf("PublishSync with no handlers: %v", err)
	}
}
