package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	// ErrMissingSigningKey is a configuration failure: the token issuer must
	// refuse to start without a key rather than mint unsigned tokens.
	ErrMissingSigningKey = errors.New("token signing key is not configured")
)

// NotFoundError distinguishes "the record is absent" from a transient store
// failure. It carries the entity name and the key that failed lookup.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// NewNotFound builds a NotFoundError for the given entity and lookup key.
func NewNotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
