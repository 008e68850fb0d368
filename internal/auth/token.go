// Package auth implements the bearer token codec. Tokens are
// self-contained HS256 JWTs carrying the user ID as subject and an
// absolute expiry. The codec is a pure function of the signing
// secret and the token content; the secret is loaded once at
// startup and passed in by the caller.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Callers must treat every one of them
// as "proceed unauthenticated"; none is fatal to request handling.
// The distinction exists for logging, never for client responses.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenSignature   = errors.New("token signature invalid")
	ErrTokenUnsupported = errors.New("token type unsupported")
)

// Token pairs a signed JWT with its expiry so callers can record the
// original expiry (e.g. in the revocation ledger) without re-parsing.
type Token struct {
	Value string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Issue builds and signs an HS256 JWT for a user. The subject claim
// is the user's numeric ID; exp is issuedAt + ttl.
func Issue(secret string, userID uint64, issuedAt time.Time, ttl time.Duration) (Token, error) {
	exp := issuedAt.UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"exp": exp.Unix(),
		"iat": issuedAt.UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// Verify checks signature and expiry and returns the subject user
// ID. Failures are classified into the sentinel errors above; any
// bit flip in payload or signature surfaces as ErrTokenSignature or
// ErrTokenMalformed.
func Verify(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenUnsupported
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		case errors.Is(err, ErrTokenUnsupported):
			return 0, ErrTokenUnsupported
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return 0, ErrTokenSignature
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrTokenMalformed
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return id, nil
}

// Expiry extracts the exp claim without verifying the signature. It
// is used when appending an already-verified token to the revocation
// ledger, where the original expiry must be recorded.
func Expiry(raw string) (time.Time, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, ErrTokenMalformed
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenMalformed
	}
	return exp.Time, nil
}
