package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/internal/auth"
	"github.com/recetario/backend/internal/model"
)

const testSecret = "middleware-test-secret"

type stubUserStore struct {
	users map[uint64]model.User
}

func (s *stubUserStore) Create(context.Context, string, string, string, uint8) (uint64, error) {
	return 0, sql.ErrNoRows
}
func (s *stubUserStore) GetByUsername(context.Context, string) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}
func (s *stubUserStore) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}
func (s *stubUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}
func (s *stubUserStore) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

type stubRevocationStore struct {
	revoked map[string]bool
}

func (s *stubRevocationStore) Revoke(_ context.Context, token string, _ time.Time) error {
	s.revoked[token] = true
	return nil
}
func (s *stubRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

// newIdentityApp wires an echo instance the way the server does:
// Identity globally, RequireAuth on /private, and a /whoami route
// that reports what Identity resolved.
func newIdentityApp(users *stubUserStore, revoked *stubRevocationStore) *echo.Echo {
	e := echo.New()
	e.Use(Identity(testSecret, users, revoked))
	e.GET("/whoami", func(c echo.Context) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return c.JSON(http.StatusOK, echo.Map{"anonymous": true})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": p.ID, "username": p.Username, "role": p.Role})
	})
	e.GET("/private", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireAuth())
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
	return e
}

func doGet(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentityEstablishesPrincipal(t *testing.T) {
	users := &stubUserStore{users: map[uint64]model.User{
		7: {ID: 7, Username: "ana", Role: model.RoleUser},
	}}
	revoked := &stubRevocationStore{revoked: map[string]bool{}}
	e := newIdentityApp(users, revoked)

	tok, err := auth.Issue(testSecret, 7, time.Now(), time.Hour)
	require.NoError(t, err)

	rec := doGet(e, "/whoami", tok.Value)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"username":"ana","role":"USER"}`, rec.Body.String())

	rec = doGet(e, "/private", tok.Value)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityDegradesToAnonymous(t *testing.T) {
	users := &stubUserStore{users: map[uint64]model.User{
		7: {ID: 7, Username: "ana", Role: model.RoleUser},
	}}
	revoked := &stubRevocationStore{revoked: map[string]bool{}}
	e := newIdentityApp(users, revoked)

	valid, err := auth.Issue(testSecret, 7, time.Now(), time.Hour)
	require.NoError(t, err)
	expired, err := auth.Issue(testSecret, 7, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	forged, err := auth.Issue("wrong-secret", 7, time.Now(), time.Hour)
	require.NoError(t, err)
	unknownSubject, err := auth.Issue(testSecret, 999, time.Now(), time.Hour)
	require.NoError(t, err)

	revokedTok, err := auth.Issue(testSecret, 7, time.Now(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(context.Background(), revokedTok.Value, revokedTok.Exp))

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "no token", bearer: ""},
		{name: "garbage token", bearer: "not-a-jwt"},
		{name: "expired token", bearer: expired.Value},
		{name: "forged signature", bearer: forged.Value},
		{name: "unknown subject", bearer: unknownSubject.Value},
		{name: "revoked token", bearer: revokedTok.Value},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, "/whoami", tt.bearer)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"anonymous":true}`, rec.Body.String())

			// The same failure through the auth gate is always the
			// same 401; the reason never reaches the client.
			rec = doGet(e, "/private", tt.bearer)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
		})
	}

	// The valid token still works after all those rejections.
	rec := doGet(e, "/private", valid.Value)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	users := &stubUserStore{users: map[uint64]model.User{
		1: {ID: 1, Username: "ana", Role: model.RoleUser},
		2: {ID: 2, Username: "root", Role: model.RoleSuperAdmin},
	}}
	revoked := &stubRevocationStore{revoked: map[string]bool{}}
	e := newIdentityApp(users, revoked)

	userTok, err := auth.Issue(testSecret, 1, time.Now(), time.Hour)
	require.NoError(t, err)
	adminTok, err := auth.Issue(testSecret, 2, time.Now(), time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(e, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, doGet(e, "/admin", userTok.Value).Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/admin", adminTok.Value).Code)
}

func TestBearerToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "", BearerToken(c))

	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	assert.Equal(t, "", BearerToken(c))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", BearerToken(c))
}
