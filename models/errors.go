package models

// Typed errors the HTTP layer translates into status codes. Services
// return these for anything detected before mutation; raw store errors
// pass through untyped and surface as a generic bad request.

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	if e.Message == "" {
		return "Unauthorized"
	}
	return e.Message
}

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return e.Message
}

// ErrorValidation carries a field -> messages map matching the error
// envelope shape.
type ErrorValidation struct {
	Fields map[string][]string
}

func (e ErrorValidation) Error() string {
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) ErrorValidation {
	return ErrorValidation{Fields: map[string][]string{field: {message}}}
}
