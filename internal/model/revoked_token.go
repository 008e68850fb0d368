package model

import "time"

// RevokedToken models an entry in the `revoked_tokens` ledger. A row
// is appended when a token is explicitly invalidated (logout or
// administrative revocation) and is never updated afterwards.
// ExpiresAt records the token's original expiry so housekeeping can
// drop rows that no longer matter; lookups stay correct whether or
// not stale rows remain.
type RevokedToken struct {
	Token     string    // revoked_tokens.token (primary key)
	ExpiresAt time.Time // revoked_tokens.expires_at
	CreatedAt time.Time // revoked_tokens.created_at
}
