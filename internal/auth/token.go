package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cleanbook/internal/admin"
)

const tokenIssuer = "cleanbook-admin"

// Claims is the admin session token payload. ID (jti) is the server-side session id.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

// Issue signs an HS256 token for u bound to sessionID.
func (t Tokens) Issue(u *admin.User, sessionID string, now time.Time) (string, time.Time, error) {
	if len(t.Secret) == 0 {
		return "", time.Time{}, errors.New("missing token secret")
	}
	exp := now.Add(t.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.ID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: u.Email,
		Name:  u.Name,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return s, exp, nil
}

// Verify checks signature, issuer and expiry as of now.
func (t Tokens) Verify(tokenString string, now time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if len(t.Secret) == 0 {
		return nil, fmt.Errorf("missing token secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("token missing subject or session id")
	}
	return claims, nil
}
