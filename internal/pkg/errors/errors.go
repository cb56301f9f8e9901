package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict signals a uniqueness violation on user-supplied fields.
	ErrConflict = errors.New("conflict")
	// ErrRequirementsNotMet signals a mission completion attempt below threshold.
	ErrRequirementsNotMet = errors.New("requirements not met")
	// ErrForbidden signals an access gate that the caller has not passed.
	ErrForbidden = errors.New("forbidden")
)
