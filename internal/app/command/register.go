// Package command defines the write-side requests that flow through the
// dispatch pipeline, together with their handlers and validators.
package command

import (
	"context"

	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// Register creates a new account. The email doubles as the username.
type Register struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterHandler resolves Register to the identity service; the new user
// id comes back as a string.
type RegisterHandler struct {
	identity ports.IdentityService
}

func NewRegisterHandler(identity ports.IdentityService) *RegisterHandler {
	return &RegisterHandler{identity: identity}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd Register) (string, error) {
	return h.identity.Register(ctx, cmd.Email, cmd.Password)
}

// UniqueEmail rejects registration when an account with the email already
// exists. This is the only duplicate-email guard above the store's unique
// index; the credential store itself does not pre-check.
func UniqueEmail(identity ports.IdentityService) func(ctx context.Context, cmd Register) ([]dispatch.FieldError, error) {
	return func(ctx context.Context, cmd Register) ([]dispatch.FieldError, error) {
		if cmd.Email == "" {
			return nil, nil // the schema validator already reports this
		}
		exists, err := identity.Exists(ctx, cmd.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return []dispatch.FieldError{{
				Field:   "email",
				Message: "There is an existing account with same email.",
			}}, nil
		}
		return nil, nil
	}
}
