package io

// Error is a handler error that carries the HTTP status code to return
// to the client.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

// NewRequestError wraps a client-provided error with an HTTP status.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}
