package models

import "fmt"

// Error kinds for the content core. The helper maps these to HTTP statuses by
// concrete type, so services must return them unwrapped.

// ErrorValidation signals missing or malformed required input.
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

// ErrorNotFound covers both "record absent" and "record invisible to this
// caller". The two are deliberately indistinguishable so anonymous callers
// cannot probe for private content.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorConflict signals a delete blocked by referential integrity. It carries
// the number of articles still referencing the persona.
type ErrorConflict struct {
	Message      string
	ArticleCount int64
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorUnauthorized signals a missing or invalid admin identity.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

func NewPersonaConflict(count int64) ErrorConflict {
	return ErrorConflict{
		Message:      fmt.Sprintf("Cannot delete persona with %d articles. Delete or reassign articles first.", count),
		ArticleCount: count,
	}
}
