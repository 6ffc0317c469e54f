package identity

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/ports"
)

// Service is the identity façade: registration, login, role checks, policy
// checks, and account deletion, combining the credential store, the token
// issuer, and the policy evaluator. It implements ports.IdentityService.
type Service struct {
	store  *CredentialStore
	issuer *Issuer
	authz  *Evaluator
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(store *CredentialStore, issuer *Issuer, authz *Evaluator, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		issuer: issuer,
		authz:  authz,
		log:    log,
		now:    time.Now,
	}
}

// Register creates the account and grants the default "User" role.
// Store-layer errors propagate unchanged.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.Create(ctx, username, password)
	if err != nil {
		return "", err
	}

	if err := s.store.AddToRole(ctx, user, domain.RoleUser); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user.ID, nil
}

// Login verifies the password and mints a token carrying the user's current
// roles. Unknown email surfaces as NotFound; a wrong password as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return ports.LoginResult{}, err
	}

	if !s.store.VerifyPassword(user, password) {
		return ports.LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email, s.store.Roles(user), s.now().UTC())
	if err != nil {
		return ports.LoginResult{}, err
	}

	return ports.LoginResult{ID: user.ID, Email: user.Email, Token: token}, nil
}

// CheckPassword reports whether the credentials are valid. An unknown email
// yields false, not an error, so the result is indistinguishable from a
// wrong password — deliberate, to avoid user enumeration.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.store.VerifyPassword(user, password), nil
}

// Exists reports whether an account with the email exists.
func (s *Service) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsInRole reports whether the user currently holds the role. Unknown user
// id is NotFound, never false.
func (s *Service) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.HasRole(role), nil
}

// GrantRole adds a role to the user. Unknown user id is NotFound. Tokens
// issued before the grant keep their old role claims until they expire.
func (s *Service) GrantRole(ctx context.Context, userID, role string) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.store.AddToRole(ctx, user, role)
}

// Authorize builds the user's current claim set and evaluates the named
// policy against it. This re-reads roles from the store rather than trusting
// token claims, so privileged checks see live role state.
func (s *Service) Authorize(ctx context.Context, userID, policyName string) (bool, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}

	claims := ClaimSet{UserID: user.ID, Email: user.Email, Roles: s.store.Roles(user)}
	return s.authz.Authorize(claims, policyName), nil
}

// DeleteUser removes the account. Unknown id is NotFound.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// UserName returns the username for the id, or NotFound.
func (s *Service) UserName(ctx context.Context, userID string) (string, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// UserID returns the id for the email, or NotFound.
func (s *Service) UserID(ctx context.Context, email string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
