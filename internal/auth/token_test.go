package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	now := time.Now()
	tok, err := Issue(secret, 42, now, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), tok.Exp, time.Second)

	uid, err := Verify(secret, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestVerifyExpired(t *testing.T) {
	tok, err := Issue(secret, 42, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = Verify(secret, tok.Value)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := Issue(secret, 42, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = Verify("other-secret", tok.Value)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

// Flipping a character inside the signature segment must fail
// verification; the token is valid only byte for byte.
func TestVerifyTamperedSignature(t *testing.T) {
	tok, err := Issue(secret, 42, time.Now(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'a' {
		sig[mid] = 'b'
	} else {
		sig[mid] = 'a'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = Verify(secret, tampered)
	assert.Error(t, err)
}

func TestVerifyMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := Verify(secret, raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(secret, raw)
	assert.ErrorIs(t, err, ErrTokenUnsupported)
}

func TestVerifyRejectsNonNumericSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = Verify(secret, signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestExpiry(t *testing.T) {
	tok, err := Issue(secret, 42, time.Now(), time.Hour)
	require.NoError(t, err)

	exp, err := Expiry(tok.Value)
	require.NoError(t, err)
	assert.WithinDuration(t, tok.Exp, exp, time.Second)

	t.Run("no verification needed", func(t *testing.T) {
		// Expiry works even when the signature would not check out.
		parts := strings.Split(tok.Value, ".")
		broken := parts[0] + "." + parts[1] + ".AAAA"
		exp, err := Expiry(broken)
		require.NoError(t, err)
		assert.WithinDuration(t, tok.Exp, exp, time.Second)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Expiry("garbage")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})
}
