package domain

import "errors"

// Authentication and authorization failures are deliberately coarse: callers
// cannot tell an unknown login name from a wrong password, nor an expired
// token from a tampered one.
var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrInvalidToken   = errors.New("invalid token")
	ErrForbidden      = errors.New("access forbidden")
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)
