package velneo

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks transport-level failures (connection refused, DNS,
// timeout) as opposed to a server that answered with an error status.
var ErrUnreachable = errors.New("velneo middleware unreachable")

// ServiceError is a non-2xx answer from a collaborator, carrying the raw
// error body the server produced.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service responded %d: %s", e.StatusCode, e.Body)
}
