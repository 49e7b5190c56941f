// Package security verifies access tokens issued by the upstream auth service.
package security

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or
	// signed with the wrong key.
	ErrInvalidToken = errors.New("invalid token")
)

// minSecretLen matches the auth service's key derivation: HMAC secrets
// shorter than this are right-padded with 'x' before use.
const minSecretLen = 64

// Claims holds the identity claims the data service cares about.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

// TokenVerifier validates HS256/HS384/HS512 bearer tokens against the shared
// secret. It only verifies; issuing is the auth service's job.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier returns a verifier for the given shared secret. issuer is
// optional; when set, the iss claim is validated.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: PadSecret(secret), issuer: issuer}
}

// PadSecret right-pads secrets shorter than 64 bytes with 'x', mirroring the
// upstream auth service so both sides derive the same HMAC key.
func PadSecret(secret string) []byte {
	if len(secret) >= minSecretLen {
		return []byte(secret)
	}
	return []byte(secret + strings.Repeat("x", minSecretLen-len(secret)))
}

// Verify parses and validates the token, returning its claims. The subject
// claim is used as a fallback user id for tokens that carry no userId claim.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return &claims, nil
}

// ExtractBearer returns the token from an Authorization header value, or ""
// when the header is missing or not a Bearer credential.
func ExtractBearer(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) {
		return ""
	}
	if !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
