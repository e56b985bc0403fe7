package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenInvalid            = errors.New("token is invalid")
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrTokenMissingSubject     = errors.New("token has no subject")
)

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

/* Verifies HMAC signed bearer tokens. The username comes from the "preferred_username"
claim, falling back to "sub"; roles come from the "roles" claim. */
type JWTVerifier struct {
	secret []byte
	method jwt.SigningMethod
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), method: jwt.SigningMethodHS256}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != v.method {
			return nil, ErrUnexpectedSigningMethod
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	username, _ := claims["preferred_username"].(string)
	if username == "" {
		username, _ = claims["sub"].(string)
	}
	if username == "" {
		return nil, ErrTokenMissingSubject
	}

	id := &Identity{Username: username}
	switch roles := claims["roles"].(type) {
	case []interface{}:
		for _, r := range roles {
			if s, ok := r.(string); ok && s != "" {
				id.Roles = append(id.Roles, s)
			}
		}
	case string:
		id.Roles = strings.Fields(roles)
	}

	return id, nil
}

/* Extracts the token of an "Authorization: Bearer <token>" header value. */
func ExtractBearerToken(val string) (token string, ok bool) {
	if len(val) < 8 || !strings.EqualFold(val[0:7], "BEARER ") {
		return "", false
	}

	return strings.TrimSpace(val[7:]), true
}
