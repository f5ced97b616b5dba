// Package authn issues and verifies the bearer tokens used by the API. Tokens
// are HMAC-signed JWTs carrying the user id and role name.
package authn

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidJWT = errors.New("invalid jwt token")

type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"id"`
	Role   string    `json:"role"`
}

// Verifier signs and parses tokens with a shared secret. Construct one at
// startup and pass it into the request-scoped handlers.
type Verifier struct {
	secret []byte
	ttl    time.Duration
}

func NewVerifier(secret string, ttl time.Duration) *Verifier {
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Verifier{secret: []byte(secret), ttl: ttl}
}

// IssueToken creates a signed token for the user, expiring after the
// configured TTL.
func (v *Verifier) IssueToken(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ParseClaims verifies the token signature and expiry and returns the claims.
func (v *Verifier) ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWT
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidJWT
	}
	return claims, nil
}

// IsAdmin reports whether the claims belong to an ADMIN user.
func (c Claims) IsAdmin() bool {
	return c.Role == "ADMIN"
}
