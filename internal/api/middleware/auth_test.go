package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/identity"
)

func newTestIssuer(t *testing.T) *identity.Issuer {
	t.Helper()
	issuer, err := identity.NewIssuer([]byte("test-signing-key"), "todo-api", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func issueToken(t *testing.T, issuer *identity.Issuer, roles ...string) string {
	t.Helper()
	token, err := issuer.Issue("u1", "a@x.com", roles, time.Now().UTC())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func doRequest(t *testing.T, mw []echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, domain.Principal, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		principal domain.Principal
		reached   bool
	)
	handler := func(c echo.Context) error {
		principal, reached = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, principal, reached
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := newTestIssuer(t)
	token := issueToken(t, issuer, domain.RoleUser)

	rec, principal, reached := doRequest(t, []echo.MiddlewareFunc{Auth(issuer)}, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}
	if !reached {
		t.Fatal("handler did not see a principal")
	}
	if principal.UserID != "u1" || principal.Email != "a@x.com" || !principal.HasRole(domain.RoleUser) {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAuth_Rejections(t *testing.T) {
	issuer := newTestIssuer(t)
	otherIssuer, err := identity.NewIssuer([]byte("some-other-key"), "todo-api", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong signing key", header: "Bearer " + issueToken(t, otherIssuer, domain.RoleUser)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, reached := doRequest(t, []echo.MiddlewareFunc{Auth(issuer)}, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status %d, want 401", rec.Code)
			}
			if reached {
				t.Fatal("handler must not run without a valid token")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := newTestIssuer(t)

	tests := []struct {
		name     string
		roles    []string
		wantCode int
	}{
		{name: "administrator allowed", roles: []string{domain.RoleAdministrator}, wantCode: http.StatusOK},
		{name: "both roles allowed", roles: []string{domain.RoleUser, domain.RoleAdministrator}, wantCode: http.StatusOK},
		{name: "plain user forbidden", roles: []string{domain.RoleUser}, wantCode: http.StatusForbidden},
		{name: "no roles forbidden", roles: nil, wantCode: http.StatusForbidden},
	}

	mw := func() []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{Auth(issuer), RequireRole(domain.RoleAdministrator)}
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token := issueToken(t, issuer, tc.roles...)
			rec, _, _ := doRequest(t, mw(), "Bearer "+token)
			if rec.Code != tc.wantCode {
				t.Fatalf("status %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	// RequireRole alone, no Auth in front: no principal, 401.
	rec, _, reached := doRequest(t, []echo.MiddlewareFunc{RequireRole(domain.RoleAdministrator)}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
	if reached {
		t.Fatal("handler must not run")
	}
}
