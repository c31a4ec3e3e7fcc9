package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runCapture(t *testing.T, h echo.HandlerFunc) (error, []error) {
	t.Helper()
	var captured []error
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := CaptureErrors(func(err error) { captured = append(captured, err) })(h)
	return wrapped(c), captured
}

func TestCaptureErrorsForwardsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	err, captured := runCapture(t, func(c echo.Context) error { return boom })
	if err != boom {
		t.Fatalf("handler error must propagate, got %v", err)
	}
	if len(captured) != 1 || captured[0] != boom {
		t.Fatalf("want the handler error captured, got %v", captured)
	}
}

func TestCaptureErrorsReportsSwallowed5xx(t *testing.T) {
	err, captured := runCapture(t, func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("want one captured error, got %d", len(captured))
	}
}

func TestCaptureErrorsIgnoresSuccessAndClientErrors(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusConflict} {
		err, captured := runCapture(t, func(c echo.Context) error {
			return c.JSON(status, echo.Map{})
		})
		if err != nil {
			t.Fatalf("status %d: %v", status, err)
		}
		if len(captured) != 0 {
			t.Fatalf("status %d must not be captured, got %v", status, captured)
		}
	}
}
