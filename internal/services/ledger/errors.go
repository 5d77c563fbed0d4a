package ledger

import "net/http"

// Error is a business-rule failure carrying the HTTP status it maps to.
// Validation returns the first violated rule only, never a list.
type Error struct {
	Status  int
	Err     string
	Message string
}

func (e *Error) Error() string { return e.Err }

func badRequest(err, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Err: err, Message: message}
}

func conflict(err, message string) *Error {
	return &Error{Status: http.StatusConflict, Err: err, Message: message}
}

func notFound(err string) *Error {
	return &Error{Status: http.StatusNotFound, Err: err}
}
