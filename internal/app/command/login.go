package command

import (
	"context"

	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// AuthenticationField is the pseudo-field the credential check reports
// against; it is not tied to either input so the response cannot reveal
// which one was wrong.
const AuthenticationField = "authentication"

// Login authenticates a user and yields a bearer token.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler resolves Login through the identity service.
type LoginHandler struct {
	identity ports.IdentityService
}

func NewLoginHandler(identity ports.IdentityService) *LoginHandler {
	return &LoginHandler{identity: identity}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd Login) (ports.LoginResult, error) {
	return h.identity.Login(ctx, cmd.Email, cmd.Password)
}

// PasswordIsCorrect verifies credentials during validation, so a bad
// password never reaches the handler. Unknown email and wrong password
// produce the exact same message — no user enumeration.
func PasswordIsCorrect(identity ports.IdentityService) func(ctx context.Context, cmd Login) ([]dispatch.FieldError, error) {
	return func(ctx context.Context, cmd Login) ([]dispatch.FieldError, error) {
		if cmd.Email == "" || cmd.Password == "" {
			return nil, nil
		}
		ok, err := identity.CheckPassword(ctx, cmd.Email, cmd.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []dispatch.FieldError{{
				Field:   AuthenticationField,
				Message: "Email or password is incorrect.",
			}}, nil
		}
		return nil, nil
	}
}
