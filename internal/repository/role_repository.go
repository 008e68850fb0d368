package repository

import (
	"context"
	"database/sql"

	"github.com/recetario/backend/internal/model"
)

// RoleRepo reads the closed set of roles. Roles are seeded by the
// schema and never created through the API.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GetByName fetches a role by its unique name. sql.ErrNoRows here
// means the seed is missing, which is a deployment fault rather than
// a per-request condition.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE name=? LIMIT 1", name).
		Scan(&role.ID, &role.Name)
	return role, err
}
