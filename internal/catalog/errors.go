package catalog

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when the outbound limiter refuses to wait for a slot.
var ErrRateLimited = errors.New("catalog rate limit exceeded")

// RequestError is returned when the catalog answers with a non-success status code.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("catalog API returned status %d: %s", e.StatusCode, e.Body)
}
