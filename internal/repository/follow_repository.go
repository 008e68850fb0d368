package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/recetario/backend/internal/model"
)

// FollowRepo manages the followers edge table. The ordered pair
// (follower_id, followee_id) is the primary key, so a racing double
// insert is rejected by the database and classified here as
// ErrAlreadyFollowing; no duplicate edge can ever be committed.
type FollowRepo struct{ DB *sql.DB }

func NewFollowRepo(db *sql.DB) *FollowRepo { return &FollowRepo{DB: db} }

var (
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// Insert creates the edge. Duplicate pairs surface as ErrAlreadyFollowing.
func (r *FollowRepo) Insert(ctx context.Context, followerID, followeeID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO followers (follower_id, followee_id) VALUES (?,?)",
		followerID, followeeID)
	if isDuplicate(err) {
		return ErrAlreadyFollowing
	}
	return err
}

// Delete removes the edge; a missing edge is ErrNotFollowing.
func (r *FollowRepo) Delete(ctx context.Context, followerID, followeeID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM followers WHERE follower_id=? AND followee_id=?",
		followerID, followeeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers returns the users following userID, newest edge first.
func (r *FollowRepo) Followers(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	const q = `SELECT u.id, u.username, u.email, u.created_at
	           FROM followers f JOIN users u ON u.id = f.follower_id
	           WHERE f.followee_id = ?
	           ORDER BY f.created_at DESC LIMIT ? OFFSET ?`
	return r.queryUsers(ctx, q, userID, limit, offset)
}

// Following returns the users userID follows, newest edge first.
func (r *FollowRepo) Following(ctx context.Context, userID uint64, limit, offset int) ([]model.User, error) {
	const q = `SELECT u.id, u.username, u.email, u.created_at
	           FROM followers f JOIN users u ON u.id = f.followee_id
	           WHERE f.follower_id = ?
	           ORDER BY f.created_at DESC LIMIT ? OFFSET ?`
	return r.queryUsers(ctx, q, userID, limit, offset)
}

func (r *FollowRepo) queryUsers(ctx context.Context, q string, args ...interface{}) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
