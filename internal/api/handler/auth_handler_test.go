package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/api/middleware"
	"github.com/ecomstore/commerce-api/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubAuthService) IssueToken(identity *domain.AuthenticatedIdentity) (string, error) {
	return "token-" + identity.Username, nil
}

type recordingSink struct {
	events []domain.AuthEvent
}

func (s *recordingSink) Publish(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error) {
			if username != "admin" || password != "adminPass" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.AuthenticatedIdentity{
				Username: "admin",
				Roles:    []domain.AppRole{domain.RoleUser, domain.RoleSeller, domain.RoleAdmin},
			}, nil
		},
	}
	sink := &recordingSink{}
	handler := NewAuthHandler(stub, nil, sink)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signin", `{"username":"admin","password":"adminPass"}`)
	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token-admin" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	roles, ok := resp["roles"].([]any)
	if !ok || len(roles) != 3 {
		t.Fatalf("unexpected roles: %v", resp["roles"])
	}

	if len(sink.events) != 1 || sink.events[0].Action != domain.AuthActionLogin || !sink.events[0].Success {
		t.Fatalf("expected a successful login audit event, got %+v", sink.events)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sink := &recordingSink{}
	handler := NewAuthHandler(stub, nil, sink)

	c, _ := newTestContext(e, http.MethodPost, "/api/auth/signin", `{"username":"admin","password":"wrong"}`)
	err := handler.SignIn(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].Success {
		t.Fatalf("expected a failed login audit event, got %+v", sink.events)
	}
}

func TestAuthHandler_SignIn_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAuthHandler(&stubAuthService{}, nil, nil)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signin", `{"username":"admin"}`)
	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAuthService{}, nil, nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/auth/user", "")
	c.Set(middleware.IdentityKey, &domain.AuthenticatedIdentity{
		Username: "seller1",
		Roles:    []domain.AppRole{domain.RoleSeller},
	})

	if err := handler.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "seller1" {
		t.Fatalf("unexpected identity payload: %+v", resp)
	}
}

func TestAuthHandler_CurrentUser_Anonymous(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAuthService{}, nil, nil)

	c, rec := newTestContext(e, http.MethodGet, "/api/auth/user", "")
	if err := handler.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_SignOut_RevokesToken(t *testing.T) {
	e := echo.New()
	revoker := &fakeRevoker{revoked: make(map[string]bool)}
	sink := &recordingSink{}
	handler := NewAuthHandler(&stubAuthService{}, revoker, sink)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signout", "")
	c.Set(middleware.IdentityKey, &domain.AuthenticatedIdentity{Username: "user1", Roles: []domain.AppRole{domain.RoleUser}})
	c.Set(middleware.BearerTokenKey, "some-token")

	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !revoker.revoked["some-token"] {
		t.Fatalf("expected the presented token to be revoked")
	}
	if len(sink.events) != 1 || sink.events[0].Action != domain.AuthActionSignout {
		t.Fatalf("expected a signout audit event, got %+v", sink.events)
	}
}

type fakeRevoker struct {
	revoked map[string]bool
}

func (f *fakeRevoker) Revoke(_ context.Context, token string, _ int64) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}
