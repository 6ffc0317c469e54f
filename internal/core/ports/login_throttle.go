package ports

import "context"

// LoginThrottle counts failed login attempts per email inside a rolling
// window. It is a brake on credential stuffing, not a revocation mechanism.
type LoginThrottle interface {
	// Blocked reports whether the email has exceeded the failure budget.
	Blocked(ctx context.Context, email string) (bool, error)
	// RecordFailure adds one failed attempt for the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}
