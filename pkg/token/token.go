// Package token supplies the bearer token attached to every admin API
// request. The token lives in durable client-side storage and is read
// through a Source on each request rather than captured once, so a token
// refreshed by the login flow is picked up without rebuilding the client.
package token

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrExpired is returned when the stored token is a JWT whose exp claim has
// passed. Failing locally saves a round-trip that the server would reject
// anyway; the caller treats it like any other authorization failure.
var ErrExpired = errors.New("token: bearer token expired")

// ErrMissing is returned when no token is stored.
var ErrMissing = errors.New("token: no bearer token stored")

// Source yields the current bearer token.
type Source interface {
	Token() (string, error)
}

// Static is a fixed in-memory token, mainly for tests and one-off scripts.
type Static string

func (s Static) Token() (string, error) {
	if s == "" {
		return "", ErrMissing
	}
	return string(s), nil
}

// File reads the token from a file on every call. This is the durable
// storage the dashboard uses; the login flow writes it, everything else
// only reads.
type File struct {
	// Path of the token file.
	Path string
	// CheckExpiry enables the local JWT exp-claim check.
	CheckExpiry bool

	now func() time.Time
}

// NewFile returns a file-backed source with the local expiry check on.
func NewFile(path string) *File {
	return &File{Path: path, CheckExpiry: true}
}

func (f *File) Token() (string, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrMissing
		}
		return "", fmt.Errorf("token: read %s: %w", f.Path, err)
	}
	tok := strings.TrimSpace(string(raw))
	if tok == "" {
		return "", ErrMissing
	}
	if f.CheckExpiry {
		if err := checkExpiry(tok, f.clock()); err != nil {
			return "", err
		}
	}
	return tok, nil
}

func (f *File) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

// checkExpiry inspects the exp claim without verifying the signature; the
// client has no key material and the server re-checks anyway. Opaque
// non-JWT tokens pass through untouched.
func checkExpiry(tok string, now time.Time) error {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return ErrExpired
	}
	return nil
}
