package repository

import (
	"context"
	"database/sql"

	"github.com/recetario/backend/internal/model"
)

// RecipeRepo covers the slice of the recipes table the social core
// needs: create, lookup (for ownership and notification text),
// public browse and delete. Ingredients, steps, categories and image
// metadata live behind their own collaborators.
type RecipeRepo struct{ DB *sql.DB }

func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{DB: db} }

// Create inserts a recipe and returns its ID.
func (r *RecipeRepo) Create(ctx context.Context, authorID uint64, title, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO recipes (author_id, title, description) VALUES (?,?,?)",
		authorID, title, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a recipe by id.
func (r *RecipeRepo) GetByID(ctx context.Context, id uint64) (model.Recipe, error) {
	var rec model.Recipe
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, author_id, title, description, created_at, updated_at FROM recipes WHERE id=? LIMIT 1",
		id).Scan(&rec.ID, &rec.AuthorID, &rec.Title, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// List returns recipes for public browsing, newest first.
func (r *RecipeRepo) List(ctx context.Context, limit, offset int) ([]model.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, author_id, title, description, created_at, updated_at FROM recipes ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Recipe, 0)
	for rows.Next() {
		var rec model.Recipe
		if err := rows.Scan(&rec.ID, &rec.AuthorID, &rec.Title, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a recipe. Edges, ratings, comments and notification
// references cascade in the schema.
func (r *RecipeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM recipes WHERE id=?", id)
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

// Exists reports whether a recipe id resolves to a row.
func (r *RecipeRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM recipes WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
