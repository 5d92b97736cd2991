package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// SeedAccount describes one account the seeder guarantees to exist.
type SeedAccount struct {
	Username string
	Email    string
	Password string
	Roles    []domain.AppRole
}

// SeedData is the injectable seed configuration: the roles the catalog must
// contain and the accounts that must exist with their role assignments.
type SeedData struct {
	Roles    []domain.AppRole
	Accounts []SeedAccount
}

// DefaultSeedData returns the fixed demo data set: the three platform roles
// and the three demonstration accounts.
func DefaultSeedData() SeedData {
	return SeedData{
		Roles: domain.AllRoles,
		Accounts: []SeedAccount{
			{Username: "user1", Email: "user1@example.com", Password: "password1", Roles: []domain.AppRole{domain.RoleUser}},
			{Username: "seller1", Email: "seller1@example.com", Password: "password2", Roles: []domain.AppRole{domain.RoleSeller}},
			{Username: "admin", Email: "admin@example.com", Password: "adminPass", Roles: []domain.AppRole{domain.RoleUser, domain.RoleSeller, domain.RoleAdmin}},
		},
	}
}

// Seeder ensures baseline roles and accounts exist at startup. Run must
// complete before the HTTP listener accepts traffic; any error is fatal to
// process start.
type Seeder struct {
	roles ports.RoleRepository
	users ports.UserRepository
	data  SeedData
	log   zerolog.Logger
}

func NewSeeder(roles ports.RoleRepository, users ports.UserRepository, data SeedData, log zerolog.Logger) *Seeder {
	return &Seeder{roles: roles, users: users, data: data, log: log}
}

// Run seeds roles and accounts. Idempotent: repeated runs never create
// duplicates. Role assignments are re-applied on every run, so manual role
// changes to seed accounts are reverted on restart (documented demo-reset
// behaviour).
func (s *Seeder) Run(ctx context.Context) error {
	for _, name := range s.data.Roles {
		if _, err := s.EnsureRole(ctx, name); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	for _, acc := range s.data.Accounts {
		if err := s.ensureAccount(ctx, acc); err != nil {
			return fmt.Errorf("seed account %s: %w", acc.Username, err)
		}
	}

	for _, acc := range s.data.Accounts {
		if err := s.applyRoles(ctx, acc); err != nil {
			return fmt.Errorf("assign roles to %s: %w", acc.Username, err)
		}
	}

	s.log.Info().Int("roles", len(s.data.Roles)).Int("accounts", len(s.data.Accounts)).Msg("bootstrap seeding complete")
	return nil
}

// EnsureRole looks up a role by name, creating it when absent. A concurrent
// creation surfacing as ErrRoleExists is treated as success.
func (s *Seeder) EnsureRole(ctx context.Context, name domain.AppRole) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}

	role, err = s.roles.Save(ctx, &domain.Role{Name: name})
	if err == nil {
		s.log.Info().Str("role", string(name)).Msg("role created")
		return role, nil
	}
	if errors.Is(err, domain.ErrRoleExists) {
		return s.roles.FindByName(ctx, name)
	}
	return nil, err
}

func (s *Seeder) ensureAccount(ctx context.Context, acc SeedAccount) error {
	exists, err := s.users.ExistsByUsername(ctx, acc.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Save(ctx, &domain.User{
		Username:     acc.Username,
		Email:        acc.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a create race with another seeding process; the account is there.
		return nil
	}
	if err == nil {
		s.log.Info().Str("username", acc.Username).Msg("seed account created")
	}
	return err
}

// applyRoles replaces the account's role set with the configured one,
// unconditionally, on every run.
func (s *Seeder) applyRoles(ctx context.Context, acc SeedAccount) error {
	user, err := s.users.FindByUsername(ctx, acc.Username)
	if err != nil {
		return err
	}

	user.Roles = append([]domain.AppRole(nil), acc.Roles...)
	user.UpdatedAt = time.Now().UTC()
	_, err = s.users.Save(ctx, user)
	return err
}
