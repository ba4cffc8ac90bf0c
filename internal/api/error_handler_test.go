package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siccrm/crm-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec.Code, rec.Body.String()
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotParticipant, http.StatusForbidden},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrContactNotFound, http.StatusNotFound},
		{domain.ErrInteractionNotFound, http.StatusNotFound},
		{domain.ErrOpportunityNotFound, http.StatusNotFound},
		{domain.ErrMessageNotFound, http.StatusNotFound},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		code, body := render(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if !strings.Contains(body, `"error"`) {
			t.Fatalf("%v: expected error envelope, got %s", tc.err, body)
		}
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	code, body := render(t, domain.Invalid("Title is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(body, "Title is required") {
		t.Fatalf("expected message passthrough, got %s", body)
	}
}

func TestErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, body := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"))
	if code != http.StatusMethodNotAllowed || !strings.Contains(body, "nope") {
		t.Fatalf("unexpected response: %d %s", code, body)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, body := render(t, errors.New("pq: relation contacts does not exist"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if strings.Contains(body, "relation") {
		t.Fatalf("internal details leaked: %s", body)
	}
	if !strings.Contains(body, "Internal server error") {
		t.Fatalf("expected generic message, got %s", body)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusOK)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)
	if rec.Code != http.StatusOK {
		t.Fatalf("committed response was overwritten: %d", rec.Code)
	}
}
