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

// NotificationHandler exposes the recipient-facing notification
// endpoints. Creation has no endpoint: notifications exist only as
// side effects of social and engagement mutations.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(n *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type notificationResp struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"type"`
	EmitterID *uint64   `json:"emitter_id,omitempty"`
	RecipeID  *uint64   `json:"recipe_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResp(n model.Notification) notificationResp {
	return notificationResp{
		ID:        n.ID,
		Type:      n.Type,
		EmitterID: n.EmitterID,
		RecipeID:  n.RecipeID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	p, _ := middleware.CurrentPrincipal(c)
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notifications.List(ctx, p.ID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	out := make([]notificationResp, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": out})
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, p.ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	p, _ := middleware.CurrentPrincipal(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.Delete(ctx, p.ID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
