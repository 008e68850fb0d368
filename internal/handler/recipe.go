package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/repository"
)

// RecipeHandler exposes the thin recipe surface the social core
// needs: public browsing plus authenticated create and delete.
// Ingredients, steps, categories and images are separate services.
type RecipeHandler struct {
	Recipes *repository.RecipeRepo
	Likes   *repository.LikeRepo
	Ratings *repository.RatingRepo
}

func NewRecipeHandler(r *repository.RecipeRepo, l *repository.LikeRepo, rt *repository.RatingRepo) *RecipeHandler {
	return &RecipeHandler{Recipes: r, Likes: l, Ratings: rt}
}

type createRecipeReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type recipeResp struct {
	ID          uint64    `json:"id"`
	AuthorID    uint64    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRecipeResp(r model.Recipe) recipeResp {
	return recipeResp{ID: r.ID, AuthorID: r.AuthorID, Title: r.Title, Description: r.Description, CreatedAt: r.CreatedAt}
}

// List handles GET /v1/recipes (public, cached).
func (h *RecipeHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Recipes.List(ctx, limit, offset)
	if err != nil {
		c.Logger().Errorf("list recipes failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]recipeResp, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"recipes": out})
}

// Get handles GET /v1/recipes/:id (public, cached). Includes the
// like count and rating aggregate alongside the recipe itself.
func (h *RecipeHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	if err != nil {
		c.Logger().Errorf("get recipe failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	likes, err := h.Likes.Count(ctx, id)
	if err != nil {
		c.Logger().Errorf("count likes failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	avg, ratings, err := h.Ratings.Average(ctx, id)
	if err != nil {
		c.Logger().Errorf("rating aggregate failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"recipe":        toRecipeResp(rec),
		"likes":         likes,
		"rating_avg":    avg,
		"rating_count":  ratings,
	})
}

// Create handles POST /v1/recipes (authenticated).
func (h *RecipeHandler) Create(c echo.Context) error {
	var req createRecipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Recipes.Create(ctx, p.ID, req.Title, req.Description)
	if err != nil {
		c.Logger().Errorf("create recipe failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recipe failed"})
	}
	rec, err := h.Recipes.GetByID(ctx, id)
	if err != nil {
		c.Logger().Errorf("load recipe failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recipe failed"})
	}
	return c.JSON(http.StatusCreated, toRecipeResp(rec))
}

// Delete handles DELETE /v1/recipes/:id. The owner may delete their
// recipe; ADMIN and SUPERADMIN may delete any. The resource is
// loaded first so a missing recipe is 404 for everyone while a
// foreign one is 403.
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recipes.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	if err != nil {
		c.Logger().Errorf("load recipe failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	isAdmin := p.Role == model.RoleAdmin || p.Role == model.RoleSuperAdmin
	if rec.AuthorID != p.ID && !isAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Recipes.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		c.Logger().Errorf("delete recipe failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
