package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 42, "COACH", 15)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if time.Until(at.Exp) <= 0 {
		t.Fatal("token already expired")
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("invalid claims")
	}
	if claims["sub"] != float64(42) {
		t.Fatalf("sub: got %v", claims["sub"])
	}
	if claims["role"] != "COACH" {
		t.Fatalf("role: got %v", claims["role"])
	}

	// A different secret must not validate.
	if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}, jwt.WithValidMethods([]string{"HS256"})); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}
