package identity

import "testing"

func TestEvaluator_Authorize(t *testing.T) {
	e := NewEvaluator()

	admin := ClaimSet{UserID: "u1", Email: "admin@x.com", Roles: []string{"Administrator"}}
	user := ClaimSet{UserID: "u2", Email: "user@x.com", Roles: []string{"User"}}

	tests := []struct {
		name   string
		claims ClaimSet
		policy string
		want   bool
	}{
		{"admin can purge", admin, PolicyCanPurge, true},
		{"user cannot purge", user, PolicyCanPurge, false},
		{"admin only allows admin", admin, PolicyAdministratorOnly, true},
		{"admin only denies user", user, PolicyAdministratorOnly, false},
		{"unknown policy denies admin", admin, "NoSuchPolicy", false},
		{"unknown policy denies user", user, "", false},
		{"no roles denies", ClaimSet{UserID: "u3"}, PolicyCanPurge, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Authorize(tt.claims, tt.policy); got != tt.want {
				t.Fatalf("Authorize(%q) = %v, want %v", tt.policy, got, tt.want)
			}
		})
	}
}

func TestEvaluator_RegisterCustomPolicy(t *testing.T) {
	e := NewEvaluator()
	e.Register("EmailOnDomain", func(c ClaimSet) bool {
		return len(c.Email) > 6 && c.Email[len(c.Email)-6:] == "@x.com"
	})

	if !e.Authorize(ClaimSet{Email: "someone@x.com"}, "EmailOnDomain") {
		t.Fatalf("expected custom policy to authorize")
	}
	if e.Authorize(ClaimSet{Email: "someone@y.com"}, "EmailOnDomain") {
		t.Fatalf("expected custom policy to deny")
	}
}
