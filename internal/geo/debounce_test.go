package geo

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerOnlyLastScheduledFires(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	done := make(chan struct{})
	d.Schedule(func() { fired.Add(100) })
	d.Schedule(func() { fired.Add(10) })
	d.Schedule(func() {
		fired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never fired")
	}
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired total = %d, want only the last scheduled call", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() != 0 {
		t.Errorf("cancelled function fired anyway")
	}
}

func TestDebouncerReusableAfterCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	d.Schedule(func() {})
	d.Cancel()

	done := make(chan struct{})
	d.Schedule(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer unusable after Cancel")
	}
}
