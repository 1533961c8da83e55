package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func identityEcho(handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	g := e.Group("/api/loans", Identity())
	g.GET("/status", handler)
	return e
}

func Test_Identity_MissingSubject(t *testing.T) {
	e := identityEcho(func(c echo.Context) error {
		t.Fatal("handler must not run without a subject")
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/api/loans/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing subject => want 401, got %d", rec.Code)
	}
}

func Test_Identity_MalformedSubject(t *testing.T) {
	e := identityEcho(func(c echo.Context) error {
		t.Fatal("handler must not run with a malformed subject")
		return nil
	})
	for _, bad := range []string{
		"not-hex",
		strings.Repeat("a", 31),
		strings.Repeat("A", 32), // uppercase rejected
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/loans/status", nil)
		req.Header.Set(HeaderSubjectID, bad)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("subject %q => want 401, got %d", bad, rec.Code)
		}
	}
}

func Test_Identity_DefaultsRoleToBorrower(t *testing.T) {
	subject := strings.Repeat("b", 32)
	var gotID, gotRole string
	e := identityEcho(func(c echo.Context) error {
		gotID, _ = c.Get(CtxSubjectID).(string)
		gotRole, _ = c.Get(CtxSubjectRole).(string)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/loans/status", nil)
	req.Header.Set(HeaderSubjectID, subject)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if gotID != subject {
		t.Fatalf("subject id = %q, want %q", gotID, subject)
	}
	if gotRole != defaultRole {
		t.Fatalf("role = %q, want %q", gotRole, defaultRole)
	}
}

func Test_Identity_PassesAssertedRole(t *testing.T) {
	var gotRole string
	e := identityEcho(func(c echo.Context) error {
		gotRole, _ = c.Get(CtxSubjectRole).(string)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/loans/status", nil)
	req.Header.Set(HeaderSubjectID, strings.Repeat("b", 32))
	req.Header.Set(HeaderSubjectRole, "admin")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if gotRole != "admin" {
		t.Fatalf("role = %q, want admin", gotRole)
	}
}
