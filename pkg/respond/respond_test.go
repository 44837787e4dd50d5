package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/caresense/caresense/internal/platform/apperr"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOK(t *testing.T) {
	c, rec := newContext()
	if err := OK(c, map[string]int{"count": 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Error != nil {
		t.Error("expected no error body")
	}
}

func TestErrorEnvelope(t *testing.T) {
	c, rec := newContext()
	err := fmt.Errorf("verify access: %w", apperr.ErrNotApproved)
	if e := Error(c, err); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Error == nil || env.Error.Kind != "not_approved" {
		t.Errorf("expected not_approved kind, got %+v", env.Error)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.ErrNotAuthenticated, http.StatusUnauthorized},
		{apperr.ErrNotApproved, http.StatusForbidden},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrValidation, http.StatusBadRequest},
		{apperr.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
