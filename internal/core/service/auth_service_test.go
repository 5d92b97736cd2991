package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.AppRole(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := cloneUser(user)
	if copy.ID == "" {
		if _, exists := r.users[copy.Username]; exists {
			return nil, domain.ErrUserExists
		}
		copy.ID = copy.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func mustAddUser(t *testing.T, repo *stubUserRepo, username, password string, roles ...domain.AppRole) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.Save(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Roles:        roles,
	}); err != nil {
		t.Fatalf("save user: %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "admin", "adminPass", domain.RoleUser, domain.RoleSeller, domain.RoleAdmin)
	svc := NewAuthService(repo, "secret", time.Hour)

	identity, err := svc.Authenticate(context.Background(), "admin", "adminPass")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if identity.Username != "admin" {
		t.Fatalf("unexpected username: %s", identity.Username)
	}
	for _, role := range domain.AllRoles {
		if !identity.HasRole(role) {
			t.Fatalf("expected role %s in identity", role)
		}
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "admin", "adminPass", domain.RoleAdmin)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Authenticate(context.Background(), "admin", "wrongpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownUserIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	mustAddUser(t, repo, "admin", "adminPass", domain.RoleAdmin)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, errWrongPass := svc.Authenticate(context.Background(), "admin", "x")
	_, errNoUser := svc.Authenticate(context.Background(), "nosuchuser", "x")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPass)
	}
	if errNoUser != errWrongPass {
		t.Fatalf("unknown user must be indistinguishable from wrong password, got %v", errNoUser)
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	if _, err := svc.Authenticate(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "user1", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_IssueToken_Claims(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	token, err := svc.IssueToken(&domain.AuthenticatedIdentity{
		Username: "seller1",
		Email:    "seller1@example.com",
		Roles:    []domain.AppRole{domain.RoleSeller},
	})
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "seller1" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != string(domain.RoleSeller) {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}
}

func TestPasswordHash_RoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("s3cret")); err != nil {
		t.Fatalf("expected hash to verify the original plaintext: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("other")); err == nil {
		t.Fatalf("expected verification failure for a different plaintext")
	}
}
