package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

func TestRule_Matches(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/", "/", true},
		{"/", "/api", false},
		{"/api/auth/**", "/api/auth/signin", true},
		{"/api/auth/**", "/api/auth", true},
		{"/api/auth/**", "/api/authx", false},
		{"/swagger-ui/**", "/swagger-ui/index.html", true},
		{"/swagger-ui.html", "/swagger-ui.html", true},
		{"/swagger-ui.html", "/swagger-ui.html/x", false},
		{"**", "/anything/at/all", true},
	}
	for _, tc := range cases {
		rule := Rule{Pattern: tc.pattern}
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("pattern %q path %q: got %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestAccessPolicy_Decide(t *testing.T) {
	p := DefaultAccessPolicy()

	publicPaths := []string{
		"/",
		"/api/auth/signin",
		"/api/test/all",
		"/v3/api-docs/swagger-config",
		"/swagger-ui/index.html",
		"/swagger-ui.html",
		"/webjars/foo.js",
		"/images/logo.png",
		"/health",
		"/metrics",
	}
	for _, path := range publicPaths {
		if p.Decide(path) != Public {
			t.Errorf("expected %q to be public", path)
		}
	}

	protectedPaths := []string{"/api/orders", "/api/orders/42", "/api/addresses", "/anything"}
	for _, path := range protectedPaths {
		if p.Decide(path) != Authenticated {
			t.Errorf("expected %q to require authentication", path)
		}
	}
}

// /swagger-ui/index.html must hit the public /swagger-ui/** rule before the
// trailing authenticated default.
func TestAccessPolicy_Precedence(t *testing.T) {
	p := NewAccessPolicy([]Rule{
		{Pattern: "/swagger-ui/**", Requirement: Public},
		{Pattern: "**", Requirement: Authenticated},
	})
	if p.Decide("/swagger-ui/index.html") != Public {
		t.Fatalf("specific public rule must win over the default")
	}
}

func TestNewAccessPolicy_RequiresDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a policy without a trailing default")
		}
	}()
	NewAccessPolicy([]Rule{{Pattern: "/api/auth/**", Requirement: Public}})
}

func TestEnforce_RejectsAnonymousProtected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := DefaultAccessPolicy().Enforce(nil)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach downstream handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body unauthorizedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != http.StatusUnauthorized || body.Error != "Unauthorized" || body.Path != "/api/orders" {
		t.Fatalf("unexpected rejection body: %+v", body)
	}
}

func TestEnforce_AllowsAnonymousPublic(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := DefaultAccessPolicy().Enforce(nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("public path must pass without credentials")
	}
}

func TestEnforce_AllowsAuthenticatedProtected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityKey, &domain.AuthenticatedIdentity{
		Username: "user1",
		Roles:    []domain.AppRole{domain.RoleUser},
	})

	called := false
	mw := DefaultAccessPolicy().Enforce(nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("authenticated request must pass the policy stage")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
