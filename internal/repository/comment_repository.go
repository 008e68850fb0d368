package repository

import (
	"context"
	"database/sql"

	"github.com/recetario/backend/internal/model"
)

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment and returns its ID.
func (r *CommentRepo) Create(ctx context.Context, userID, recipeID uint64, text string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (user_id, recipe_id, text) VALUES (?,?,?)",
		userID, recipeID, text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a comment by id.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, recipe_id, text, created_at FROM comments WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Text, &c.CreatedAt)
	return c, err
}

// ListByRecipe returns a recipe's comments, oldest first.
func (r *CommentRepo) ListByRecipe(ctx context.Context, recipeID uint64, limit, offset int) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, recipe_id, text, created_at FROM comments WHERE recipe_id=? ORDER BY created_at ASC LIMIT ? OFFSET ?",
		recipeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
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
