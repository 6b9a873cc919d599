package service

import "errors"

// Domain errors surfaced by service operations. Handlers translate these
// into the {success:false, message} envelope; anything else is treated as
// an internal failure.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownEmail       = errors.New("email not registered")
	ErrExpiredResetToken  = errors.New("reset token expired")
	ErrInvalidResetToken  = errors.New("reset token invalid")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("missing required field")
)
