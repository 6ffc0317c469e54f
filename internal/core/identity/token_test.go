package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/taskline/todo-api/internal/core/domain"
)

func TestNewIssuer_EmptyKey(t *testing.T) {
	if _, err := NewIssuer(nil, "todo-api", time.Hour); !errors.Is(err, domain.ErrMissingSigningKey) {
		t.Fatalf("expected ErrMissingSigningKey, got %v", err)
	}
	if _, err := NewIssuer([]byte{}, "todo-api", time.Hour); !errors.Is(err, domain.ErrMissingSigningKey) {
		t.Fatalf("expected ErrMissingSigningKey for empty key, got %v", err)
	}
}

func TestIssuer_IssueAndParse(t *testing.T) {
	issuer, err := NewIssuer([]byte("secret"), "todo-api", 2*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer returned error: %v", err)
	}

	issuedAt := time.Now().UTC().Truncate(time.Second)
	token, err := issuer.Issue("u1", "a@x.com", []string{"User", "Administrator"}, issuedAt)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("expected subject u1, got %q", claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q", claims.Email)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "User" || claims.Roles[1] != "Administrator" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issuedAt.Add(2 * time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", issuedAt.Add(2*time.Hour), got)
	}
}

func TestIssuer_Deterministic(t *testing.T) {
	issuer, _ := NewIssuer([]byte("secret"), "todo-api", time.Hour)
	issuedAt := time.Unix(1700000000, 0).UTC()

	a, err := issuer.Issue("u1", "a@x.com", []string{"User"}, issuedAt)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	b, err := issuer.Issue("u1", "a@x.com", []string{"User"}, issuedAt)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if a != b {
		t.Fatalf("identical inputs produced different tokens")
	}
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issuer, _ := NewIssuer([]byte("secret"), "todo-api", time.Hour)

	// Issued long enough ago that the lifetime has fully elapsed.
	token, err := issuer.Issue("u1", "a@x.com", nil, time.Now().UTC().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestIssuer_WrongKey(t *testing.T) {
	issuer, _ := NewIssuer([]byte("secret"), "todo-api", time.Hour)
	other, _ := NewIssuer([]byte("different"), "todo-api", time.Hour)

	token, err := issuer.Issue("u1", "a@x.com", nil, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}

func TestIssuer_WrongIssuer(t *testing.T) {
	issuer, _ := NewIssuer([]byte("secret"), "todo-api", time.Hour)
	other, _ := NewIssuer([]byte("secret"), "someone-else", time.Hour)

	token, err := issuer.Issue("u1", "a@x.com", nil, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected issuer mismatch to be rejected")
	}
}
