package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func tokenWithoutExpiry(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, exp)

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("TokenExpiry() error = %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("TokenExpiry() = %v, want %v", got, exp)
	}
}

func TestTokenExpiryMalformed(t *testing.T) {
	if _, err := TokenExpiry("not.a.token"); err == nil {
		t.Error("TokenExpiry() on malformed token should fail")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "token one hour in the future",
			token: signedToken(t, now.Add(time.Hour)),
			want:  false,
		},
		{
			name:  "token one day in the past",
			token: signedToken(t, now.Add(-24*time.Hour)),
			want:  true,
		},
		{
			name:  "token expiring exactly now",
			token: signedToken(t, now),
			want:  true,
		},
		{
			name:  "malformed token fails closed",
			token: "garbage",
			want:  true,
		},
		{
			name:  "token without exp claim fails closed",
			token: tokenWithoutExpiry(t),
			want:  true,
		},
		{
			name:  "empty token",
			token: "",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expired(tt.token, now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
