package remote

import (
	"errors"
	"fmt"

	"github.com/dberzins/stockroom/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is the shared sentinel re-exported at the transport
	// boundary, so callers can match either name with errors.Is.
	ErrUnauthorized = common.ErrorUnauthorized
)

// APIError is a server-rejected request: a non-2xx response carrying a
// message extracted from the backend's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}
