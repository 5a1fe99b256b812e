package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the admin API. Message carries the
// server-provided failure text verbatim when the payload had one, so the
// dashboard can surface it to the user unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsAuth reports whether the error is an authorization failure. The cache
// layer treats it like any other fetch failure; the view layer uses it to
// redirect to login.
func (e *Error) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// ErrRejected is wrapped by errors returned when the server answered 200 but
// flagged the operation as unsuccessful in the response envelope.
var ErrRejected = errors.New("api: request rejected")

// IsAuthError reports whether err is an authorization failure, either an
// HTTP 401/403 or a token-source failure surfaced before the request went
// out.
func IsAuthError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.IsAuth()
	}
	return errors.Is(err, ErrNoToken)
}

// ErrNoToken is returned when the token source cannot produce a usable
// bearer token (missing or locally detected as expired). No request is
// issued in that case.
var ErrNoToken = errors.New("api: no usable bearer token")
