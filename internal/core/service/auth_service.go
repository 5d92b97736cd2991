package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// AuthService verifies credentials against the user store and signs
// stateless bearer tokens.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Authenticate looks up the user and verifies the password hash. An unknown
// username and a wrong password return the same ErrInvalidCredentials so the
// response never discloses whether the account exists.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.AuthenticatedIdentity{
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}, nil
}

// IssueToken signs an HS256 JWT carrying the identity's username and roles.
func (s *AuthService) IssueToken(identity *domain.AuthenticatedIdentity) (string, error) {
	roles := make([]string, len(identity.Roles))
	for i, r := range identity.Roles {
		roles[i] = string(r)
	}

	claims := jwt.MapClaims{
		"sub":   identity.Username,
		"email": identity.Email,
		"roles": roles,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
