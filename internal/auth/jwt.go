// Package auth covers credentials of the admin api: jwt access tokens and
// bcrypt password hashes.
package auth

import (
	"crypto"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtClaims are the registered claims carried by issued access tokens
type JwtClaims struct {
	jwt.RegisteredClaims
}

// Jwt couples the signed token with its unix expiration moment
type Jwt struct {
	Signed    string
	ExpiresAt int64
}

// JwtIssuer signs access tokens with a fixed issuer claim and time to live
type JwtIssuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

// NewJwtIssuer builds new JwtIssuer
func NewJwtIssuer(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *JwtIssuer {
	return &JwtIssuer{issuer: issuer, method: method, timeToLive: ttl, privateKey: key}
}

// Sign issues a token for the subject, valid from issuedAt for the
// configured time to live
func (i *JwtIssuer) Sign(subject string, issuedAt time.Time) (*Jwt, error) {
	expiresAt := issuedAt.Add(i.timeToLive)

	token := jwt.NewWithClaims(i.method, JwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.privateKey)
	if err != nil {
		return nil, err
	}
	return &Jwt{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// JwtValidator verifies tokens produced by a matching JwtIssuer
type JwtValidator struct {
	method    jwt.SigningMethod
	publicKey crypto.PublicKey
}

// NewJwtValidator builds new JwtValidator
func NewJwtValidator(method jwt.SigningMethod, key crypto.PublicKey) *JwtValidator {
	return &JwtValidator{method: method, publicKey: key}
}

// Verify parses the raw token, checks its signature and standard claims
func (v *JwtValidator) Verify(rawToken string) (JwtClaims, error) {
	var claims JwtClaims

	keyFunc := func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != v.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm %s", token.Method.Alg())
		}
		return v.publicKey, nil
	}

	if _, err := jwt.ParseWithClaims(rawToken, &claims, keyFunc); err != nil {
		return JwtClaims{}, err
	}
	return claims, nil
}
