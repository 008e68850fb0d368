// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services and handlers to distinguish between different
// failure scenarios without depending on driver error strings.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert collides with existing state,
// such as a duplicate follow edge. Handlers translate this into
// HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). Repositories attempt the insert and classify the
// violation rather than check-then-insert, so racing duplicates
// surface as business conflicts instead of silent double rows.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
