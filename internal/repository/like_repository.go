package repository

import (
	"context"
	"database/sql"
)

// LikeRepo manages the recipe_likes edge table. (user_id, recipe_id)
// is the primary key.
type LikeRepo struct{ DB *sql.DB }

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db} }

// Toggle flips the like edge for (userID, recipeID) inside a single
// transaction and returns the resulting state: true when the call
// created the edge, false when it removed it. Delete-first keeps the
// two halves of the toggle atomic; if a concurrent request slips an
// insert in between, the duplicate-key violation is folded into
// "already liked" rather than surfacing as an error.
func (r *LikeRepo) Toggle(ctx context.Context, userID, recipeID uint64) (liked bool, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM recipe_likes WHERE user_id=? AND recipe_id=?",
		userID, recipeID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO recipe_likes (user_id, recipe_id) VALUES (?,?)",
			userID, recipeID)
		if isDuplicate(err) {
			err = nil
		}
		if err != nil {
			return false, err
		}
		liked = true
	}
	return liked, tx.Commit()
}

// Exists reports whether the like edge is present.
func (r *LikeRepo) Exists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM recipe_likes WHERE user_id=? AND recipe_id=? LIMIT 1",
		userID, recipeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of likes on a recipe.
func (r *LikeRepo) Count(ctx context.Context, recipeID uint64) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe_likes WHERE recipe_id=?", recipeID).Scan(&n)
	return n, err
}
