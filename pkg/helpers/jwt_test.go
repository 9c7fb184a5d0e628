package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenCarriesUserAndExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret", 4*time.Hour).WithClock(func() time.Time { return issued })

	tok, exp, err := m.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.Equal(issued.Add(4 * time.Hour)) {
		t.Fatalf("expiry = %v, want %v", exp, issued.Add(4*time.Hour))
	}
	claims, err := m.ParseToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("uid = %d, want 42", claims.UserID)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != 4*time.Hour {
		t.Fatalf("lifetime = %v, want 4h", got)
	}
}

func TestParseTokenRejects(t *testing.T) {
	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret", 4*time.Hour).WithClock(func() time.Time { return issued })
	good, _, err := m.GenerateToken(7)
	if err != nil {
		t.Fatal(err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		mgr   *JWTManager
		token string
	}{
		{"garbled", m, "not-a-token"},
		{"wrong secret", NewJWTManager("other", 4*time.Hour).WithClock(func() time.Time { return issued }), good},
		{"expired", NewJWTManager("secret", 4*time.Hour).WithClock(func() time.Time { return issued.Add(4*time.Hour + time.Second) }), good},
		{"alg none", m, none},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.mgr.ParseToken(tc.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	h, err := HashPassword("12345678", 4)
	if err != nil {
		t.Fatal(err)
	}
	if h == "12345678" {
		t.Fatal("hash equals plaintext")
	}
	if !CompareHashAndPassword(h, "12345678") {
		t.Fatal("expected match")
	}
	if CompareHashAndPassword(h, "87654321") {
		t.Fatal("expected mismatch")
	}
}
