package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskline/todo-api/internal/core/domain"
)

// Claims is the token payload: subject id, email, and one entry per role.
// It is a point-in-time snapshot — role changes after issuance are not
// reflected until the token expires.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256 bearer tokens with a single symmetric
// key fixed at construction. No key rotation, no key-id claim.
type Issuer struct {
	key      []byte
	issuer   string
	lifetime time.Duration
}

// NewIssuer builds an Issuer. An empty key is a configuration error and
// fails immediately; lifetime defaults to 24h when non-positive.
func NewIssuer(key []byte, issuerName string, lifetime time.Duration) (*Issuer, error) {
	if len(key) == 0 {
		return nil, domain.ErrMissingSigningKey
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Issuer{key: key, issuer: issuerName, lifetime: lifetime}, nil
}

// Lifetime returns the configured validity window.
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

// Issue signs a token for the user. Expiry is exactly issuedAt + lifetime,
// and identical inputs produce an identical token string.
func (i *Issuer) Issue(userID, email string, roles []string, issuedAt time.Time) (string, error) {
	claims := &Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Parse validates signature, expiry, and issuer, and returns the claims.
// Only HS256 is accepted; any other algorithm is rejected outright.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.key, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
