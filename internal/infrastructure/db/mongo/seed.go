package mongo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/ports"
)

// Seed ensures the immutable role reference set exists and, when an admin
// email and password are configured, a default administrator account.
// Idempotent; safe to run on every startup.
func Seed(ctx context.Context, roles ports.RoleRepository, identity ports.IdentityService, adminEmail, adminPassword string, log zerolog.Logger) error {
	for _, name := range []string{domain.RoleAdministrator, domain.RoleUser} {
		if err := roles.Ensure(ctx, name); err != nil {
			return err
		}
	}

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	exists, err := identity.Exists(ctx, adminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	id, err := identity.Register(ctx, adminEmail, adminPassword)
	if err != nil {
		return err
	}

	if err := identity.GrantRole(ctx, id, domain.RoleAdministrator); err != nil {
		return err
	}

	log.Info().Str("user_id", id).Msg("seeded default administrator")
	return nil
}
