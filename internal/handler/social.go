package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/service"
)

// SocialHandler exposes the follow graph endpoints.
type SocialHandler struct {
	Social *service.SocialService
}

func NewSocialHandler(s *service.SocialService) *SocialHandler { return &SocialHandler{Social: s} }

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

func toUserParts(users []model.User) []userPart {
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Username: u.Username})
	}
	return out
}

// Follow handles POST /v1/users/:id/follow.
func (h *SocialHandler) Follow(c echo.Context) error {
	targetID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Social.Follow(ctx, p.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow handles DELETE /v1/users/:id/follow.
func (h *SocialHandler) Unfollow(c echo.Context) error {
	targetID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Social.Unfollow(ctx, p.ID, targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Followers handles GET /v1/users/:id/followers.
func (h *SocialHandler) Followers(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Social.Followers(ctx, userID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": toUserParts(users)})
}

// Following handles GET /v1/users/:id/following.
func (h *SocialHandler) Following(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Social.Following(ctx, userID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": toUserParts(users)})
}
