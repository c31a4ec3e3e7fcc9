package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/utils"
)

func runWithRole(t *testing.T, role interface{}, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec.Code
}

func TestRequireRole(t *testing.T) {
	if code := runWithRole(t, "COACH", "COACH"); code != http.StatusOK {
		t.Fatalf("coach allowed: got %d", code)
	}
	if code := runWithRole(t, "USER", "COACH"); code != http.StatusUnauthorized {
		t.Fatalf("user rejected: got %d", code)
	}
	if code := runWithRole(t, "USER", "COACH", "USER"); code != http.StatusOK {
		t.Fatalf("multi-role: got %d", code)
	}
	if code := runWithRole(t, nil, "COACH"); code != http.StatusUnauthorized {
		t.Fatalf("missing role: got %d", code)
	}
	if code := runWithRole(t, 42, "COACH"); code != http.StatusUnauthorized {
		t.Fatalf("non-string role: got %d", code)
	}
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()

	handler := JWTAuth(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Missing header.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d", rec.Code)
	}

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d", rec.Code)
	}

	// Valid token populates the context.
	at, err := utils.NewAccessToken(secret, 7, "USER", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotRole interface{}
	inner := JWTAuth(secret)(func(c echo.Context) error {
		gotRole = c.Get("role")
		return c.String(http.StatusOK, "ok")
	})
	if err := inner(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d", rec.Code)
	}
	if gotRole != "USER" {
		t.Fatalf("role claim: got %v", gotRole)
	}
}
