package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/recetario/backend/internal/model"
	"github.com/recetario/backend/internal/queue"
	"github.com/recetario/backend/internal/repository"
)

// Event describes a notification to emit after a mutation commits.
// Mutators produce events; the Notifier consumes them. Keeping the
// two apart lets the uniqueness and ownership rules be tested
// without a broker or a notifications table.
type Event struct {
	Type        string
	RecipientID uint64
	Emitter     model.User
	Recipe      *model.Recipe
}

// Notifier consumes events produced by the social and engagement
// mutators.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// NotificationService persists notifications, publishes them to the
// message broker, and serves the recipient-facing operations (list,
// mark read, delete).
type NotificationService struct {
	Notifications repository.NotificationStore
}

func NewNotificationService(n repository.NotificationStore) *NotificationService {
	return &NotificationService{Notifications: n}
}

// Notify renders the message for the event, stores the notification
// row and publishes the event to the broker. Store failures are
// logged, not propagated: the primary mutation has already committed
// and must not be rolled back or failed because of the side effect.
func (s *NotificationService) Notify(ctx context.Context, ev Event) {
	var msg string
	var recipeID *uint64
	switch ev.Type {
	case model.NotificationNewFollower:
		msg = fmt.Sprintf("El usuario %s ha comenzado a seguirte.", ev.Emitter.Username)
	case model.NotificationNewLike:
		msg = fmt.Sprintf("A %s le ha gustado tu receta '%s'.", ev.Emitter.Username, ev.Recipe.Title)
		recipeID = &ev.Recipe.ID
	case model.NotificationNewComment:
		msg = fmt.Sprintf("%s ha comentado en tu receta '%s'.", ev.Emitter.Username, ev.Recipe.Title)
		recipeID = &ev.Recipe.ID
	default:
		log.Printf("notifier: unknown event type %q", ev.Type)
		return
	}

	emitterID := ev.Emitter.ID
	row := &model.Notification{
		RecipientID: ev.RecipientID,
		Type:        ev.Type,
		EmitterID:   &emitterID,
		RecipeID:    recipeID,
		Message:     msg,
	}
	id, err := s.Notifications.Create(ctx, row)
	if err != nil {
		log.Printf("notifier: store notification failed: %v", err)
		return
	}

	out := queue.NotificationEvent{
		NotificationID: id,
		Type:           ev.Type,
		RecipientID:    ev.RecipientID,
		EmitterID:      ev.Emitter.ID,
		EmitterName:    ev.Emitter.Username,
		Message:        msg,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if ev.Recipe != nil {
		out.RecipeID = ev.Recipe.ID
		out.RecipeTitle = ev.Recipe.Title
	}
	_ = queue.PublishNotification(ctx, out) // best effort, already logged
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID uint64, limit, offset int) ([]model.Notification, error) {
	return s.Notifications.ListByRecipient(ctx, recipientID, limit, offset)
}

// MarkRead flips the read flag on one of the caller's notifications.
// A notification belonging to someone else is reported as not found
// rather than forbidden, so callers cannot probe for foreign IDs.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, notificationID uint64) error {
	n, err := s.Notifications.GetByID(ctx, notificationID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if n.RecipientID != callerID {
		return ErrNotFound
	}
	return s.Notifications.MarkRead(ctx, notificationID)
}

// Delete removes one of the caller's notifications; only the
// recipient may delete it.
func (s *NotificationService) Delete(ctx context.Context, callerID, notificationID uint64) error {
	n, err := s.Notifications.GetByID(ctx, notificationID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if n.RecipientID != callerID {
		return ErrNotFound
	}
	return s.Notifications.Delete(ctx, notificationID)
}
