package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
)

type memCell struct{ value string }

func (c *memCell) Get(ctx context.Context) (string, error)     { return c.value, nil }
func (c *memCell) Set(ctx context.Context, token string) error { c.value = token; return nil }
func (c *memCell) Clear(ctx context.Context) error             { c.value = ""; return nil }

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func protectedProbe() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("protected content"))
	})
}

func TestRequireSession(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		token         string
		wantStatus    int
		wantRedirect  bool
		wantSessionUp bool // token still held after the request
	}{
		{
			name:          "no token redirects to login",
			token:         "",
			wantStatus:    http.StatusSeeOther,
			wantRedirect:  true,
			wantSessionUp: false,
		},
		{
			name:          "valid token passes through",
			token:         signedToken(t, now.Add(time.Hour)),
			wantStatus:    http.StatusOK,
			wantSessionUp: true,
		},
		{
			name:          "expired token clears session and redirects",
			token:         signedToken(t, now.Add(-time.Minute)),
			wantStatus:    http.StatusSeeOther,
			wantRedirect:  true,
			wantSessionUp: false,
		},
		{
			name:          "malformed token behaves like an expired one",
			token:         "not.a.jwt",
			wantStatus:    http.StatusSeeOther,
			wantRedirect:  true,
			wantSessionUp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New(&memCell{}, logger.Nop())
			if tt.token != "" {
				sess.Login(context.Background(), tt.token)
			}

			handler := RequireSession(sess, func() time.Time { return now }, logger.Nop())(protectedProbe())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantRedirect {
				if loc := rr.Header().Get("Location"); loc != "/login" {
					t.Errorf("redirect location = %q, want /login", loc)
				}
			}
			if got := sess.Token() != ""; got != tt.wantSessionUp {
				t.Errorf("session token held = %v, want %v", got, tt.wantSessionUp)
			}
		})
	}
}

func TestRequireSessionRechecksPerRequest(t *testing.T) {
	// The guard re-runs on each request: a token valid on the first pass
	// and expired by the second must be caught on the second.
	sess := session.New(&memCell{}, logger.Nop())
	sess.Login(context.Background(), signedToken(t, time.Now().Add(30*time.Minute)))

	clock := time.Now()
	handler := RequireSession(sess, func() time.Time { return clock }, logger.Nop())(protectedProbe())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rr.Code)
	}

	clock = clock.Add(time.Hour)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("second request status = %d, want redirect after expiry", rr.Code)
	}
	if sess.Token() != "" {
		t.Error("session still holds a token after expiry was detected")
	}
}
