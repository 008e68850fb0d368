package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/service"
)

// EngagementHandler exposes like, rating and comment endpoints.
type EngagementHandler struct {
	Engagement *service.EngagementService
}

func NewEngagementHandler(e *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{Engagement: e}
}

type rateReq struct {
	Score int `json:"score"`
}
type commentReq struct {
	Text string `json:"text"`
}

// ToggleLike handles POST /v1/recipes/:id/like. One endpoint flips
// both ways so clients cannot race a separate check against the flip.
func (h *EngagementHandler) ToggleLike(c echo.Context) error {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	liked, err := h.Engagement.ToggleLike(ctx, p.ID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// Rate handles POST /v1/recipes/:id/rating.
func (h *EngagementHandler) Rate(c echo.Context) error {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engagement.Rate(ctx, p.ID, recipeID, req.Score); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Comment handles POST /v1/recipes/:id/comments.
func (h *EngagementHandler) Comment(c echo.Context) error {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm, err := h.Engagement.Comment(ctx, p.ID, recipeID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         cm.ID,
		"recipe_id":  cm.RecipeID,
		"user_id":    cm.UserID,
		"text":       cm.Text,
		"created_at": cm.CreatedAt,
	})
}

// ListComments handles GET /v1/recipes/:id/comments (public).
func (h *EngagementHandler) ListComments(c echo.Context) error {
	recipeID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Engagement.ListComments(ctx, recipeID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	out := make([]echo.Map, 0, len(comments))
	for _, cm := range comments {
		out = append(out, echo.Map{
			"id":         cm.ID,
			"recipe_id":  cm.RecipeID,
			"user_id":    cm.UserID,
			"text":       cm.Text,
			"created_at": cm.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": out})
}

// DeleteComment handles DELETE /v1/comments/:id. Author-only.
func (h *EngagementHandler) DeleteComment(c echo.Context) error {
	commentID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engagement.DeleteComment(ctx, p.ID, commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
