package config

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims bind a token to one game session; the session id is the
// subject.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func (c SessionClaims) SessionID() string {
	return c.Subject
}

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func NewJWT(s Session) (*JWT, error) {
	if s.Secret == "" {
		return nil, fmt.Errorf("no session secret set")
	}

	j := &JWT{
		secret:        []byte(s.Secret),
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: s.TokenLifetime.Duration,
	}

	return j, nil
}

func (j *JWT) Sign(sessionID string, now time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
