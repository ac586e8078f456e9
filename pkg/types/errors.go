package types

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrIncompleteRecord = errors.New("incomplete record")
	ErrStorage          = errors.New("storage failure")

	ErrUserNotFound = errors.New("user not found")
)
