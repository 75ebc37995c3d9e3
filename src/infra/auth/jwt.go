// Package auth verifies the bearer tokens that identify players.
package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

var _ ports.Authenticator = (*JWTAuthenticator)(nil)

// JWTAuthenticator accepts HS256 tokens whose subject is the numeric user id.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	parser *jwt.Parser
	now    func() time.Time
}

func NewJWTAuthenticator(secret, issuer string) *JWTAuthenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
		now:    time.Now,
	}
}

// Authenticate returns the user id carried by token.
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, domain.NewUnauthorizedError("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, domain.NewUnauthorizedError("invalid token subject")
	}
	return userID, nil
}

// Issue signs a token for userID valid for ttl. It backs the development
// token command and tests.
func (a *JWTAuthenticator) Issue(userID int64, ttl time.Duration) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
