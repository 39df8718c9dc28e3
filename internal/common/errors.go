package common

import "errors"

// Business logic errors
var (
	// Content errors
	ErrContentNotFound = errors.New("content not found")

	// Reaction errors
	ErrInvalidReactionKind = errors.New("invalid reaction kind")
	ErrReactionConflict    = errors.New("reaction changed concurrently")

	// Member errors
	ErrUserNotFound   = errors.New("user not found")
	ErrInactiveMember = errors.New("inactive member")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
)
