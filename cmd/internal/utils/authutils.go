package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenData struct {
	Sub  string
	Role string
	Exp  int64
}

// Expired reports whether the token carries an "exp" claim in the past.
// Tokens without "exp" never expire from the dashboard's point of view.
func (t *TokenData) Expired(now time.Time) bool {
	return t.Exp > 0 && now.Unix() >= t.Exp
}

// InspectToken reads the claims of a bearer token WITHOUT checking its signature.
// The backend is the only one able to verify it; the dashboard only needs the
// expiry to decide whether the stored session is still usable.
func InspectToken(tokenString string) (*TokenData, error) {
	clean := sanitizeToken(tokenString)
	if clean == "" {
		return nil, errors.New("empty token")
	}

	token, _, err := jwt.NewParser().ParseUnverified(clean, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	role := getValue(claims, "role")
	if role == "" {
		role = getValue(claims, "cargo")
	}

	return &TokenData{
		Sub:  getValue(claims, "sub"),
		Role: role,
		Exp:  getInt64(claims, "exp"),
	}, nil
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
