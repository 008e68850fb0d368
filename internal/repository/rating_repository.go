package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/recetario/backend/internal/model"
)

// RatingRepo manages the ratings table. The schema keeps
// (user_id, recipe_id) unique; Upsert leans on that constraint so a
// re-rating rewrites the existing row instead of adding a second one.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// Upsert inserts a rating or, when the pair already has one,
// overwrites its score and timestamp in place.
func (r *RatingRepo) Upsert(ctx context.Context, userID, recipeID uint64, score int, ratedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ratings (user_id, recipe_id, score, rated_at) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE score=VALUES(score), rated_at=VALUES(rated_at)`,
		userID, recipeID, score, ratedAt.UTC())
	return err
}

// GetByUserAndRecipe returns the rating for a pair, if any.
func (r *RatingRepo) GetByUserAndRecipe(ctx context.Context, userID, recipeID uint64) (model.Rating, error) {
	var rt model.Rating
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, recipe_id, score, rated_at FROM ratings WHERE user_id=? AND recipe_id=? LIMIT 1",
		userID, recipeID).
		Scan(&rt.ID, &rt.UserID, &rt.RecipeID, &rt.Score, &rt.RatedAt)
	return rt, err
}

// Average returns the mean score of a recipe and the number of
// ratings it is computed from. Zero ratings yields (0, 0, nil).
func (r *RatingRepo) Average(ctx context.Context, recipeID uint64) (avg float64, count uint64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(score), 0), COUNT(*) FROM ratings WHERE recipe_id=?",
		recipeID).Scan(&avg, &count)
	return avg, count, err
}

// Delete removes a user's rating of a recipe.
func (r *RatingRepo) Delete(ctx context.Context, userID, recipeID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM ratings WHERE user_id=? AND recipe_id=?", userID, recipeID)
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
