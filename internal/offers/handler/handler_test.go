package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodrescue_portal/internal/offers/domain"
	"foodrescue_portal/internal/offers/service"
	"foodrescue_portal/internal/offers/transport"
	"foodrescue_portal/platform/logger"
	"foodrescue_portal/platform/validator"

	"github.com/gin-gonic/gin"
)

// stubBackend answers the minimum the create path needs: the mutation and
// the follow-up refresh reads.
type stubBackend struct {
	created []transport.CreateOfferRequest
}

func (b *stubBackend) List(ctx context.Context) ([]domain.Offer, error) {
	return nil, nil
}

func (b *stubBackend) Get(ctx context.Context, id string) (domain.Offer, error) {
	return domain.Offer{}, nil
}

func (b *stubBackend) Create(ctx context.Context, req transport.CreateOfferRequest) (domain.Offer, error) {
	b.created = append(b.created, req)
	return domain.Offer{
		ID:          "created-1",
		DonorName:   req.DonorName,
		Description: req.Description,
		Portions:    req.Portions,
		Status:      domain.StatusAvailable,
	}, nil
}

func (b *stubBackend) ApplyAction(ctx context.Context, id string, action domain.Action) (domain.Offer, error) {
	return domain.Offer{}, nil
}

func (b *stubBackend) Delete(ctx context.Context, id string) error {
	return nil
}

func (b *stubBackend) Stats(ctx context.Context) (domain.Statistics, error) {
	return domain.Statistics{}, nil
}

func newCreateRouter(t *testing.T) (*gin.Engine, *stubBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &stubBackend{}
	svc := service.New(backend, validator.New(), nil, logger.New("development"))
	h := New(svc)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.POST("/offers", h.Create)
	return engine, backend
}

func TestCreateAcceptsValidOffer(t *testing.T) {
	engine, backend := newCreateRouter(t)

	pickupBy := time.Now().Add(6 * time.Hour).Format("2006-01-02T15:04:05")
	body := `{
		"donorName": "Padaria Central",
		"donorContact": "+55 11 3256-0001",
		"description": "Day-old bread",
		"portions": 10,
		"latitude": -23.5505,
		"longitude": -46.6333,
		"pickupBy": "` + pickupBy + `"
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/offers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var result transport.ActionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Offer.ID != "created-1" || result.Warning != "" {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(backend.created) != 1 {
		t.Fatalf("backend received %d create calls, want 1", len(backend.created))
	}
}

func TestCreateRejectsBlankDonorNameAtBindTime(t *testing.T) {
	engine, backend := newCreateRouter(t)

	pickupBy := time.Now().Add(6 * time.Hour).Format("2006-01-02T15:04:05")
	body := `{
		"donorName": "   ",
		"donorContact": "+55 11 3256-0001",
		"description": "Day-old bread",
		"portions": 10,
		"latitude": -23.5505,
		"longitude": -46.6333,
		"pickupBy": "` + pickupBy + `"
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/offers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if len(backend.created) != 0 {
		t.Errorf("backend received a create call for an invalid offer")
	}
}
