package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/recetario/backend/internal/auth"
	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/utils"
)

// AuthService issues and revokes bearer tokens and manages
// registration. The signing secret and token TTL are fixed at
// construction; nothing rotates them mid-process.
type AuthService struct {
	Users      repository.UserStore
	Roles      repository.RoleStore
	Revoked    repository.RevocationStore
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthService(users repository.UserStore, roles repository.RoleStore, revoked repository.RevocationStore, secret string, ttl time.Duration, bcryptCost int) *AuthService {
	return &AuthService{Users: users, Roles: roles, Revoked: revoked, Secret: secret, TokenTTL: ttl, BcryptCost: bcryptCost}
}

// Register creates a user with the default USER role. Username and
// email collisions come back as the repository's per-field conflict
// errors. A missing USER role is a deployment fault and propagates
// as-is.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	role, err := s.Roles.GetByName(ctx, model.RoleUser)
	if err != nil {
		return model.User{}, err
	}
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.Users.Create(ctx, username, email, hash, role.ID)
	if err != nil {
		return model.User{}, err
	}
	return s.Users.GetByID(ctx, id)
}

// Login resolves the identifier as a username first, then as an
// email, verifies the password and issues a token. Unknown
// identifier and wrong password collapse into the same
// ErrInvalidCredentials so responses never reveal whether the
// account exists.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (model.User, auth.Token, error) {
	identifier = strings.TrimSpace(identifier)
	u, err := s.Users.GetByUsername(ctx, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		u, err = s.Users.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, auth.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, auth.Token{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, auth.Token{}, ErrInvalidCredentials
	}
	tok, err := auth.Issue(s.Secret, u.ID, time.Now(), s.TokenTTL)
	if err != nil {
		return model.User{}, auth.Token{}, err
	}
	return u, tok, nil
}

// Logout appends the presented token to the revocation ledger with
// its original expiry. Idempotent; a token that cannot even be
// parsed is ignored, since it could never authenticate anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	exp, err := auth.Expiry(token)
	if err != nil {
		return nil
	}
	return s.Revoked.Revoke(ctx, token, exp)
}
