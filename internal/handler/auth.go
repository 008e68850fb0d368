package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler { return &AuthHandler{Auth: a} }

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type profileResp struct {
	ID       uint64   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}
type loginResp struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	UserID    uint64   `json:"userId"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

// Register creates a user with the default role. Username and email
// collisions are reported as distinct, specific conflicts; unlike
// login, registration is not an enumeration vector worth hiding.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already in use"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already in use"})
		default:
			c.Logger().Errorf("register failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
	}

	return c.JSON(http.StatusCreated, profileResp{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    []string{u.Role},
	})
}

// Login verifies credentials and returns a bearer token. Every
// failure path answers the same 401 body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "identifier/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Auth.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		c.Logger().Errorf("login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token:     tok.Value,
		TokenType: "Bearer",
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     []string{u.Role},
	})
}

// Logout appends the caller's current bearer token to the revocation
// ledger. Idempotent: revoking an already-revoked token answers 204
// again, which is why this route sits outside RequireAuth (a revoked
// token no longer authenticates).
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := middleware.BearerToken(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bearer token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.Logout(ctx, raw); err != nil {
		c.Logger().Errorf("logout failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated caller's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	p, _ := middleware.CurrentPrincipal(c)
	return c.JSON(http.StatusOK, echo.Map{
		"id":       p.ID,
		"username": p.Username,
		"roles":    []string{p.Role},
	})
}
