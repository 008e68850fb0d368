package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
)

// respondServiceError is the single translation point from business
// error kinds to the HTTP taxonomy. Anything unrecognized is a
// genuine fault: it is logged with full context and answered with an
// opaque 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrSelfFollow):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot follow yourself"})
	case errors.Is(err, service.ErrInvalidScore):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "score must be between 1 and 5"})
	case errors.Is(err, service.ErrEmptyText):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text must not be empty"})
	case errors.Is(err, repository.ErrAlreadyFollowing):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already following this user"})
	case errors.Is(err, repository.ErrNotFollowing):
		return c.JSON(http.StatusConflict, echo.Map{"error": "not following this user"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// pathID parses a numeric :param path segment.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// pageParams reads limit/offset query parameters with sane bounds.
func pageParams(c echo.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
