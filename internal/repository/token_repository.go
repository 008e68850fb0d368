package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo is the revocation ledger. It holds the exact token
// strings that were explicitly invalidated before their natural
// expiry, together with that original expiry. Rows are append-only;
// lookups are exact-match and stay correct whether or not stale rows
// remain past their expiry.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Revoke appends a token to the ledger. Revoking an already-revoked
// token is a no-op, not an error.
func (r *TokenRepo) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO revoked_tokens (token, expires_at) VALUES (?,?)",
		token, expiresAt.UTC())
	return err
}

// IsRevoked reports whether the token is in the ledger. The check is
// consulted on every request carrying a token, before signature and
// expiry verification; a cryptographically valid token must still be
// rejected once it appears here.
func (r *TokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM revoked_tokens WHERE token=? LIMIT 1", token).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PruneExpired deletes ledger rows whose original expiry has passed.
// Pure housekeeping: an expired-and-revoked token is rejected by the
// codec either way, so correctness never depends on this running.
func (r *TokenRepo) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM revoked_tokens WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
