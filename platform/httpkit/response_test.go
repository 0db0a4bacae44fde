package httpkit

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodrescue_portal/platform/apperr"

	"github.com/gin-gonic/gin"
)

func handleInTestContext(t *testing.T, err error) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return rec, HandleError(c, err)
}

func TestHandleErrorMapsKindToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, 0},
		{"not found", apperr.NotFound("offer not found"), http.StatusNotFound},
		{"invalid transition", apperr.InvalidTransition("no"), http.StatusConflict},
		{"upstream", apperr.Upstream("backend down", nil), http.StatusBadGateway},
		{"location unavailable", apperr.LocationUnavailable("denied"), http.StatusServiceUnavailable},
		{"untyped", errors.New("plain"), http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, handled := handleInTestContext(t, tc.err)
			if tc.err == nil {
				if handled {
					t.Fatal("nil error reported as handled")
				}
				return
			}
			if !handled {
				t.Fatal("error not handled")
			}
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

func TestHandleErrorUnwrapsNestedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("list offers: %w", apperr.Upstream("backend down", nil))
	rec, handled := handleInTestContext(t, wrapped)
	if !handled {
		t.Fatal("wrapped error not handled")
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 from the wrapped error's kind", rec.Code)
	}
}
