package geo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apphttp "foodrescue_portal/internal/http"
	"foodrescue_portal/platform/logger"

	"github.com/gin-gonic/gin"
)

func newLocationRouter(t *testing.T) (*gin.Engine, *Module) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	g := NewGeocoder("http://unused.invalid", "", nil, logger.New("development"))
	m := NewModule(g)
	m.picker.search = NewDebouncer(time.Millisecond)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: v1})
	return engine, m
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCurrentEndpointResolvesThroughPicker(t *testing.T) {
	engine, m := newLocationRouter(t)

	rec := postJSON(engine, "/api/v1/location/current", `{"latitude": -23.5505199, "longitude": -46.6333094}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var result LocationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Address != "-23.550520, -46.633309" {
		t.Errorf("address = %q, want coordinate string fallback", result.Address)
	}
	if m.picker.State() != StateResolved {
		t.Errorf("picker state = %s, want RESOLVED", m.picker.State())
	}
}

func TestCurrentEndpointRejectsStaleFix(t *testing.T) {
	engine, m := newLocationRouter(t)

	observed := time.Now().Add(-time.Hour).Format(time.RFC3339)
	rec := postJSON(engine, "/api/v1/location/current",
		`{"latitude": 1, "longitude": 2, "observedAt": "`+observed+`"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503; body: %s", rec.Code, rec.Body.String())
	}
	if m.picker.State() != StateFailed {
		t.Errorf("picker state = %s, want FAILED", m.picker.State())
	}
}

func TestCurrentEndpointRejectsOutOfRangeCoordinates(t *testing.T) {
	engine, _ := newLocationRouter(t)

	rec := postJSON(engine, "/api/v1/location/current", `{"latitude": 91, "longitude": 0}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503; body: %s", rec.Code, rec.Body.String())
	}
}

func TestStateEndpointReflectsLifecycle(t *testing.T) {
	engine, _ := newLocationRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/location/state", nil))
	var state StateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.State != StateIdle || state.LastResult != nil {
		t.Errorf("initial state = %+v, want IDLE with no result", state)
	}

	postJSON(engine, "/api/v1/location/current", `{"latitude": 10, "longitude": 20}`)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/location/state", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.State != StateResolved || state.LastResult == nil {
		t.Fatalf("state after acquisition = %+v, want RESOLVED with a result", state)
	}
	if state.LastResult.Address != "10.000000, 20.000000" {
		t.Errorf("last result address = %q", state.LastResult.Address)
	}
}

func TestSearchEndpointRequiresCapability(t *testing.T) {
	engine, _ := newLocationRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/location/search?q=mercado", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501 without a geocoding credential; body: %s", rec.Code, rec.Body.String())
	}
}
