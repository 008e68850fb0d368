package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recetario/backend/internal/auth"
	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/utils"
)

const testSecret = "unit-test-secret"

func newAuthService(users *fakeUserStore, revoked *fakeRevocationStore) *AuthService {
	return NewAuthService(users, newFakeRoleStore(), revoked, testSecret, time.Hour, bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := newAuthService(users, newFakeRevocationStore())

	u, err := svc.Register(ctx, "ana", "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "s3cret"))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "ana", "other@example.com", "pw")
		assert.ErrorIs(t, err, repository.ErrUsernameExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "other", "ana@example.com", "pw")
		assert.ErrorIs(t, err, repository.ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := newAuthService(users, newFakeRevocationStore())

	registered, err := svc.Register(ctx, "bruno", "bruno@example.com", "hunter2")
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by username", identifier: "bruno", password: "hunter2"},
		{name: "by email", identifier: "bruno@example.com", password: "hunter2"},
		{name: "unknown identifier", identifier: "nobody", password: "hunter2", wantErr: ErrInvalidCredentials},
		{name: "wrong password", identifier: "bruno", password: "hunter3", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, tok, err := svc.Login(ctx, tt.identifier, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, u.ID)

			uid, err := auth.Verify(testSecret, tok.Value)
			require.NoError(t, err)
			assert.Equal(t, registered.ID, uid)
			assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, time.Minute)
		})
	}
}

// A failed login must answer identically whether the account exists
// or not; a distinguishable response would let callers enumerate
// registered usernames and emails.
func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserStore(), newFakeRevocationStore())
	_, err := svc.Register(ctx, "carla", "carla@example.com", "correct")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "ghost", "whatever")
	_, _, errWrongPw := svc.Login(ctx, "carla", "incorrect")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	revoked := newFakeRevocationStore()
	svc := newAuthService(users, revoked)

	_, err := svc.Register(ctx, "dora", "dora@example.com", "pw")
	require.NoError(t, err)
	_, tok, err := svc.Login(ctx, "dora", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tok.Value))
	got, err := revoked.IsRevoked(ctx, tok.Value)
	require.NoError(t, err)
	assert.True(t, got)
	assert.WithinDuration(t, tok.Exp, revoked.revoked[tok.Value], time.Second)

	t.Run("idempotent", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, tok.Value))
		assert.Len(t, revoked.revoked, 1)
	})

	t.Run("unparsable token is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, "not-a-jwt"))
		assert.Len(t, revoked.revoked, 1)
	})
}
