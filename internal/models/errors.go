package models

import "errors"

var (
	// ErrNotFound means a referenced question, answer, vote or
	// notification does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the acting user lacks rights over the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrOperationFailed wraps a storage failure that happened after
	// validation passed. The enclosing transaction has been rolled back.
	ErrOperationFailed = errors.New("operation failed")

	ErrInvalidFormat    = errors.New("invalid format")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrWeakPasswd       = errors.New("weak password")
	ErrBadContentLen    = errors.New("content length out of bounds")
)
