package ports

import "context"

// LoginResult is what a successful authentication hands back to the boundary.
type LoginResult struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// IdentityService is the single entry point for account and authorization
// operations. Absent records surface as domain.NotFoundError; a wrong
// password on CheckPassword is a boolean, not an error, so callers cannot
// distinguish it from an unknown email.
type IdentityService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	CheckPassword(ctx context.Context, email, password string) (bool, error)
	Exists(ctx context.Context, email string) (bool, error)
	IsInRole(ctx context.Context, userID, role string) (bool, error)
	GrantRole(ctx context.Context, userID, role string) error
	Authorize(ctx context.Context, userID, policyName string) (bool, error)
	DeleteUser(ctx context.Context, userID string) error
	UserName(ctx context.Context, userID string) (string, error)
	UserID(ctx context.Context, email string) (string, error)
}
