package repository

import (
	"context"
	"database/sql"

	"github.com/recetario/backend/internal/model"
)

type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification row and returns its ID. Rows are only
// ever created by the social and engagement mutators.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) (uint64, error) {
	var emitter, recipe interface{}
	if n.EmitterID != nil {
		emitter = *n.EmitterID
	}
	if n.RecipeID != nil {
		recipe = *n.RecipeID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (recipient_id, type, emitter_id, recipe_id, message) VALUES (?,?,?,?,?)",
		n.RecipientID, n.Type, emitter, recipe, n.Message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a notification by id.
func (r *NotificationRepo) GetByID(ctx context.Context, id uint64) (model.Notification, error) {
	var n model.Notification
	var emitter, recipe sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, recipient_id, type, emitter_id, recipe_id, message, `read`, created_at FROM notifications WHERE id=? LIMIT 1",
		id).Scan(&n.ID, &n.RecipientID, &n.Type, &emitter, &recipe, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		return n, err
	}
	if emitter.Valid {
		v := uint64(emitter.Int64)
		n.EmitterID = &v
	}
	if recipe.Valid {
		v := uint64(recipe.Int64)
		n.RecipeID = &v
	}
	return n, nil
}

// ListByRecipient returns a user's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID uint64, limit, offset int) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, recipient_id, type, emitter_id, recipe_id, message, `read`, created_at FROM notifications WHERE recipient_id=? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var emitter, recipe sql.NullInt64
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &emitter, &recipe, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if emitter.Valid {
			v := uint64(emitter.Int64)
			n.EmitterID = &v
		}
		if recipe.Valid {
			v := uint64(recipe.Int64)
			n.RecipeID = &v
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag. The read state is the only mutable
// part of a notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET `read`=TRUE WHERE id=?", id)
	return err
}

// Delete removes a notification.
func (r *NotificationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notifications WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
