package apitest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("role", "admin")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := RequireRole("admin", "user")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"unknown role", "absent", http.StatusForbidden},
		{"no header", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.role != "" {
				req.Header.Set("role", tc.role)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			mw := RequireRole("admin")
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected echo.HTTPError, got %v", err)
			}
			if he.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, he.Code)
			}
		})
	}
}
