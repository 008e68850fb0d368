// Package service implements the business rules of the social core.
// Operations return sentinel errors for every expected business
// outcome; handlers translate them once into HTTP statuses, so a
// duplicate follow or an out-of-range score never surfaces as a
// generic server error.
package service

import (
	"database/sql"
	"errors"
)

var (
	// ErrInvalidCredentials is the single answer to every failed
	// login. An unknown identifier and a wrong password are
	// indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound covers any referenced entity that does not resolve
	// (user, recipe, comment, notification).
	ErrNotFound = errors.New("not found")

	// ErrSelfFollow rejects follow(a, a).
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrInvalidScore rejects rating scores outside 1..5.
	ErrInvalidScore = errors.New("score must be between 1 and 5")

	// ErrEmptyText rejects blank comments.
	ErrEmptyText = errors.New("comment text must not be empty")
)

// asNotFound folds the driver's no-rows answer into the business
// ErrNotFound while leaving genuine faults untouched.
func asNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
