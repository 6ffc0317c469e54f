package ports

import (
	"context"

	"github.com/taskline/todo-api/internal/core/domain"
)

// UserRepository defines persistence access for user accounts.
//
// Lookups are case-sensitive on id and case-insensitive on email, matching
// the backing store's collation. Create does not guard against duplicate
// emails beyond the store's unique index; uniqueness is primarily enforced
// by the registration validator.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	AddToRole(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
}

// RoleRepository manages the immutable role reference set.
type RoleRepository interface {
	Ensure(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
