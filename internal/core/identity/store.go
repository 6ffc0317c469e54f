// Package identity holds the account and authorization core: the credential
// store, the token issuer, the policy evaluator, and the service façade the
// rest of the system calls.
package identity

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/ports"
)

// CredentialStore wraps the user repository and owns password hashing.
// It deliberately does not pre-check email uniqueness: that is the
// registration validator's job, with the store's unique index as the
// backstop for concurrent registrations.
type CredentialStore struct {
	repo ports.UserRepository
}

func NewCredentialStore(repo ports.UserRepository) *CredentialStore {
	return &CredentialStore{repo: repo}
}

// Create hashes the password and stores a new account. The username doubles
// as the email address at registration time.
func (s *CredentialStore) Create(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// It never returns why a mismatch occurred.
func (s *CredentialStore) VerifyPassword(user *domain.User, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// Roles returns a copy of the user's role names in stored order.
func (s *CredentialStore) Roles(user *domain.User) []string {
	out := make([]string, len(user.Roles))
	copy(out, user.Roles)
	return out
}

// AddToRole grants the role in the store and mirrors it on the in-memory user.
func (s *CredentialStore) AddToRole(ctx context.Context, user *domain.User, role string) error {
	if err := s.repo.AddToRole(ctx, user.ID, role); err != nil {
		return err
	}
	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, user *domain.User) error {
	return s.repo.Delete(ctx, user.ID)
}
