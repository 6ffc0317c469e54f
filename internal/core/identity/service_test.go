package identity

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NewNotFound("user", email)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFound("user", id)
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddToRole(_ context.Context, userID, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.NewNotFound("user", userID)
	}
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return domain.NewNotFound("user", userID)
	}
	delete(r.users, userID)
	return nil
}

func newTestService(t *testing.T) (*Service, *Issuer) {
	t.Helper()
	issuer, err := NewIssuer([]byte("secret"), "todo-api", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer returned error: %v", err)
	}
	svc := NewService(NewCredentialStore(newStubUserRepo()), issuer, NewEvaluator(), zerolog.Nop())
	return svc, issuer
}

func TestService_RegisterThenLogin(t *testing.T) {
	svc, issuer := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a user id")
	}

	result, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.ID != id || result.Email != "a@x.com" {
		t.Fatalf("unexpected login result: %+v", result)
	}

	claims, err := issuer.Parse(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != id {
		t.Fatalf("expected token subject %q, got %q", id, claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected token email a@x.com, got %q", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default User role claim, got %v", claims.Roles)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "ghost@x.com", "whatever")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestService_CheckPassword_NoEnumeration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	wrongPw, err := svc.CheckPassword(ctx, "a@x.com", "wrong")
	if err != nil || wrongPw {
		t.Fatalf("expected (false, nil) for wrong password, got (%v, %v)", wrongPw, err)
	}
	unknown, err := svc.CheckPassword(ctx, "ghost@x.com", "wrong")
	if err != nil || unknown {
		t.Fatalf("expected (false, nil) for unknown email, got (%v, %v)", unknown, err)
	}

	ok, err := svc.CheckPassword(ctx, "a@x.com", "secret1")
	if err != nil || !ok {
		t.Fatalf("expected (true, nil) for correct password, got (%v, %v)", ok, err)
	}
}

func TestService_Exists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	exists, err := svc.Exists(ctx, "a@x.com")
	if err != nil || !exists {
		t.Fatalf("expected existing email, got (%v, %v)", exists, err)
	}
	// Email lookups are case-insensitive.
	exists, err = svc.Exists(ctx, "A@X.COM")
	if err != nil || !exists {
		t.Fatalf("expected case-insensitive match, got (%v, %v)", exists, err)
	}
	exists, err = svc.Exists(ctx, "ghost@x.com")
	if err != nil || exists {
		t.Fatalf("expected missing email, got (%v, %v)", exists, err)
	}
}

func TestService_IsInRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	admin, err := svc.IsInRole(ctx, id, domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("IsInRole returned error: %v", err)
	}
	if admin {
		t.Fatalf("fresh user should not be an administrator")
	}

	if err := svc.GrantRole(ctx, id, domain.RoleAdministrator); err != nil {
		t.Fatalf("GrantRole returned error: %v", err)
	}

	admin, err = svc.IsInRole(ctx, id, domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("IsInRole returned error: %v", err)
	}
	if !admin {
		t.Fatalf("expected administrator role after grant")
	}

	// Unknown id surfaces as NotFound, never as false.
	if _, err := svc.IsInRole(ctx, "nope", domain.RoleAdministrator); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown id, got %v", err)
	}
}

func TestService_Authorize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	ok, err := svc.Authorize(ctx, id, PolicyCanPurge)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if ok {
		t.Fatalf("plain user should not satisfy CanPurge")
	}

	if err := svc.GrantRole(ctx, id, domain.RoleAdministrator); err != nil {
		t.Fatalf("GrantRole returned error: %v", err)
	}

	ok, err = svc.Authorize(ctx, id, PolicyCanPurge)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if !ok {
		t.Fatalf("administrator should satisfy CanPurge")
	}

	if _, err := svc.Authorize(ctx, "nope", PolicyCanPurge); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown id, got %v", err)
	}
}

func TestService_DeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.DeleteUser(ctx, id); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := svc.DeleteUser(ctx, id); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestService_UserNameAndUserID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	name, err := svc.UserName(ctx, id)
	if err != nil || name != "a@x.com" {
		t.Fatalf("unexpected UserName result: (%q, %v)", name, err)
	}

	gotID, err := svc.UserID(ctx, "a@x.com")
	if err != nil || gotID != id {
		t.Fatalf("unexpected UserID result: (%q, %v)", gotID, err)
	}

	if _, err := svc.UserName(ctx, "nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := svc.UserID(ctx, "ghost@x.com"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
