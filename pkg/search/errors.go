package search

import "fmt"

// APIError is returned when the API reply carries an error object. Message is
// the upstream text and must be treated as untrusted plain text.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError covers failures where no upstream message is available:
// network errors, undecodable bodies and bare non-2xx replies.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
