package command

import (
	"context"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/identity"
	"github.com/taskline/todo-api/internal/core/ports"
)

// DeleteUser removes an account. CallerID is the authenticated caller,
// passed explicitly by the boundary; only administrators may delete users.
type DeleteUser struct {
	UserID   string `json:"user_id" validate:"required"`
	CallerID string `json:"-" validate:"required"`
}

type DeleteUserHandler struct {
	identity ports.IdentityService
}

func NewDeleteUserHandler(svc ports.IdentityService) *DeleteUserHandler {
	return &DeleteUserHandler{identity: svc}
}

func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUser) (struct{}, error) {
	ok, err := h.identity.Authorize(ctx, cmd.CallerID, identity.PolicyAdministratorOnly)
	if err != nil {
		return struct{}{}, err
	}
	if !ok {
		return struct{}{}, domain.ErrForbidden
	}
	return struct{}{}, h.identity.DeleteUser(ctx, cmd.UserID)
}
