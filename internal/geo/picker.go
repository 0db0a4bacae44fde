package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"foodrescue_portal/platform/apperr"
)

// AcquisitionState models the location widget lifecycle.
type AcquisitionState string

const (
	StateIdle      AcquisitionState = "IDLE"
	StateAcquiring AcquisitionState = "ACQUIRING"
	StateResolved  AcquisitionState = "RESOLVED"
	StateFailed    AcquisitionState = "FAILED"
)

const (
	// acquireTimeout bounds how long a device position request may hang.
	acquireTimeout = 10 * time.Second
	// positionMaxAge rejects cached device positions older than this.
	positionMaxAge = 10 * time.Minute
	// searchDebounce is the typing inactivity window before a search fires.
	searchDebounce = 500 * time.Millisecond
)

// Position is a raw device geolocation fix.
type Position struct {
	Latitude   float64
	Longitude  float64
	ObservedAt time.Time
}

// PositionSource abstracts device geolocation. The HTTP layer supplies
// browser-reported coordinates; tests supply fakes.
type PositionSource interface {
	Position(ctx context.Context) (Position, error)
}

// PositionFunc adapts a function to the PositionSource interface.
type PositionFunc func(ctx context.Context) (Position, error)

func (f PositionFunc) Position(ctx context.Context) (Position, error) { return f(ctx) }

// Picker is the owned state container behind the location widget:
// Idle → Acquiring → {Resolved | Failed}. At most one device acquisition is
// in flight per picker; a new request supersedes the previous one, whose
// result is discarded. Search input is debounced and superseding.
type Picker struct {
	geocoder *Geocoder
	timeout  time.Duration
	maxAge   time.Duration
	search   *Debouncer

	mu         sync.Mutex
	state      AcquisitionState
	gen        uint64
	cancel     context.CancelFunc
	last       LocationResult
	searchWait chan struct{}
}

// NewPicker creates a picker over the shared geocoder.
func NewPicker(geocoder *Geocoder) *Picker {
	return &Picker{
		geocoder: geocoder,
		timeout:  acquireTimeout,
		maxAge:   positionMaxAge,
		search:   NewDebouncer(searchDebounce),
		state:    StateIdle,
	}
}

// State returns the current acquisition state.
func (p *Picker) State() AcquisitionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Last returns the most recently resolved location.
func (p *Picker) Last() (LocationResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.state == StateResolved
}

// CurrentLocation requests the device position from the given source and
// resolves it to a LocationResult. With the geocoding capability enabled the
// coordinates are reverse-geocoded; otherwise, or when reverse geocoding
// fails, the address is the fixed-precision coordinate string. Device
// denial, timeout, or a stale fix fail with a typed location-unavailable
// error.
func (p *Picker) CurrentLocation(ctx context.Context, source PositionSource) (LocationResult, error) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		// Supersede the in-flight acquisition rather than interleave two
		// device requests from one widget.
		p.cancel()
	}
	acqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	p.cancel = cancel
	p.state = StateAcquiring
	p.mu.Unlock()
	defer cancel()

	pos, err := source.Position(acqCtx)

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return LocationResult{}, apperr.LocationUnavailable("superseded by a newer location request").WithOp("geo.current")
	}
	p.cancel = nil
	if err != nil {
		p.state = StateFailed
		p.mu.Unlock()
		return LocationResult{}, apperr.LocationUnavailable("device position unavailable: " + err.Error()).WithOp("geo.current")
	}
	if !pos.ObservedAt.IsZero() && time.Since(pos.ObservedAt) > p.maxAge {
		p.state = StateFailed
		p.mu.Unlock()
		return LocationResult{}, apperr.LocationUnavailable("device position is stale").WithOp("geo.current")
	}
	if err := ValidateCoordinates(pos.Latitude, pos.Longitude); err != nil {
		p.state = StateFailed
		p.mu.Unlock()
		return LocationResult{}, apperr.LocationUnavailable("device reported coordinates out of range").WithOp("geo.current")
	}
	p.mu.Unlock()

	result := ResolvePosition(acqCtx, p.geocoder, pos.Latitude, pos.Longitude)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return LocationResult{}, apperr.LocationUnavailable("superseded by a newer location request").WithOp("geo.current")
	}
	p.state = StateResolved
	p.last = result
	return result, nil
}

// Search schedules an address lookup after the debounce window and waits for
// it. Newer input supersedes a waiting lookup, which reports superseded=true
// without touching the provider. Blank input cancels any pending lookup.
func (p *Picker) Search(ctx context.Context, query string) (results []LocationResult, superseded bool, err error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		p.mu.Lock()
		if p.searchWait != nil {
			close(p.searchWait)
			p.searchWait = nil
		}
		p.mu.Unlock()
		p.search.Cancel()
		return nil, false, nil
	}

	p.mu.Lock()
	if p.searchWait != nil {
		close(p.searchWait)
	}
	wait := make(chan struct{})
	p.searchWait = wait
	p.mu.Unlock()

	type outcome struct {
		results []LocationResult
		err     error
	}
	fired := make(chan outcome, 1)
	p.search.Schedule(func() {
		found, lookupErr := p.geocoder.Search(ctx, trimmed)
		fired <- outcome{results: found, err: lookupErr}
	})

	select {
	case out := <-fired:
		p.mu.Lock()
		if p.searchWait == wait {
			p.searchWait = nil
		}
		p.mu.Unlock()
		return out.results, false, out.err
	case <-wait:
		return nil, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// ResolvePosition turns raw coordinates into a LocationResult, reverse
// geocoding when the capability allows and falling back to the coordinate
// string form. It never fails: a position always yields a usable result.
func ResolvePosition(ctx context.Context, geocoder *Geocoder, lat, lng float64) LocationResult {
	if geocoder != nil && geocoder.Enabled() {
		if result, err := geocoder.Reverse(ctx, lat, lng); err == nil {
			return result
		}
	}
	return LocationResult{
		Latitude:  lat,
		Longitude: lng,
		Address:   FormatCoordinates(lat, lng),
	}
}
