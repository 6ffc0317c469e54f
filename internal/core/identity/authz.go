package identity

// Policy names known to the evaluator.
const (
	PolicyCanPurge          = "CanPurge"
	PolicyAdministratorOnly = "AdministratorOnly"
)

// ClaimSet is the projection of a user used for policy evaluation. It is the
// same shape that gets embedded into tokens at issuance.
type ClaimSet struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the claim set carries the given role.
func (c ClaimSet) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Policy is a named predicate over a claim set.
type Policy func(ClaimSet) bool

// RequireRole builds a policy satisfied only by holders of the role.
func RequireRole(role string) Policy {
	return func(c ClaimSet) bool {
		return c.HasRole(role)
	}
}

// Evaluator answers "can this claim set satisfy policy P". It returns only
// the boolean: callers learn nothing about a policy's structure, and an
// unknown policy name evaluates to not-authorized rather than erroring.
type Evaluator struct {
	policies map[string]Policy
}

// NewEvaluator returns an Evaluator seeded with the built-in policies.
func NewEvaluator() *Evaluator {
	e := &Evaluator{policies: make(map[string]Policy)}
	e.Register(PolicyCanPurge, RequireRole("Administrator"))
	e.Register(PolicyAdministratorOnly, RequireRole("Administrator"))
	return e
}

// Register adds or replaces a named policy.
func (e *Evaluator) Register(name string, p Policy) {
	e.policies[name] = p
}

// Authorize evaluates the named policy against the claims.
func (e *Evaluator) Authorize(claims ClaimSet, policyName string) bool {
	p, ok := e.policies[policyName]
	if !ok {
		return false
	}
	return p(claims)
}
