package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStaticToken(t *testing.T) {
	tok, err := Static("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestStaticEmptyIsMissing(t *testing.T) {
	_, err := Static("").Token()
	assert.ErrorIs(t, err, ErrMissing)
}

func TestFileReadsTrimmedToken(t *testing.T) {
	path := writeTokenFile(t, "  opaque-token\n")
	f := NewFile(path)

	tok, err := f.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", tok)
}

func TestFileMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope"))
	_, err := f.Token()
	assert.ErrorIs(t, err, ErrMissing)
}

func TestFileEmptyIsMissing(t *testing.T) {
	path := writeTokenFile(t, "\n")
	_, err := NewFile(path).Token()
	assert.ErrorIs(t, err, ErrMissing)
}

func TestFileExpiredJWT(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	path := writeTokenFile(t, signedJWT(t, now.Add(-time.Minute)))

	f := NewFile(path)
	f.now = func() time.Time { return now }

	_, err := f.Token()
	assert.ErrorIs(t, err, ErrExpired)
}

func TestFileValidJWT(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	raw := signedJWT(t, now.Add(time.Hour))
	path := writeTokenFile(t, raw)

	f := NewFile(path)
	f.now = func() time.Time { return now }

	tok, err := f.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, tok)
}

func TestFileOpaqueTokenSkipsExpiryCheck(t *testing.T) {
	// Non-JWT tokens cannot be inspected locally; the server decides.
	path := writeTokenFile(t, "not-a-jwt")
	tok, err := NewFile(path).Token()
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", tok)
}

func TestFileExpiryCheckDisabled(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	path := writeTokenFile(t, signedJWT(t, now.Add(-time.Hour)))

	f := &File{Path: path, now: func() time.Time { return now }}

	_, err := f.Token()
	assert.NoError(t, err)
}
