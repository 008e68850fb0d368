package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column. The json tags
// are omitted because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique public handle.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  RoleID       – foreign key into the roles table.
//  Role         – role name joined from the roles table (USER, ADMIN,
//                 SUPERADMIN). Populated on reads, ignored on writes.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	RoleID       uint8     // users.role_id (references roles.id)
	Role         string    // roles.name (joined)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role represents a row in the `roles` table. It maps a small
// integer ID to a role name. Users reference this table via the
// RoleID field; a user carries exactly one role.
//
// Fields:
//  ID   – numeric identifier of the role.
//  Name – unique role name (USER, ADMIN, SUPERADMIN).
type Role struct {
	ID   uint8  // roles.id
	Name string // roles.name
}

// Role names seeded in the roles table.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)
