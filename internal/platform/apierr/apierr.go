// Package apierr tags service errors with the HTTP status and machine code
// the handler layer should emit, so mapping does not depend on string
// matching.
package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Conflict tags err as a 409 with the given code. err should still wrap the
// matching sentinel so errors.Is keeps working for callers that only care
// about the category.
func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}
