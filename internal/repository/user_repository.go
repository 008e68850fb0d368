package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/recetario/backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Registration conflicts are per-field so the handler can report
// which of the two unique columns collided.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

const userCols = "u.id, u.username, u.email, u.password_hash, u.role_id, r.name, u.created_at, u.updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RoleID, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user and returns its ID. The email is normalized
// to lower case; the username keeps its case but is matched
// case-insensitively by the unique index. The password must already
// be hashed by the caller; plaintext never reaches this layer.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string, roleID uint8) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role_id) VALUES (?,?,?,?)",
		username, email, passwordHash, roleID)
	if err != nil {
		if isDuplicate(err) {
			// the index name tells the two unique columns apart
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user with its role name joined in.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users u JOIN roles r ON r.id=u.role_id WHERE u.username=? LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users u JOIN roles r ON r.id=u.role_id WHERE u.email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users u JOIN roles r ON r.id=u.role_id WHERE u.id=? LIMIT 1",
		id))
}

// Exists reports whether a user id resolves to a row.
func (r *UserRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
