package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/config"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
	"github.com/tonypeanut/fullstack-notes-full/internal/web"
)

type memCell struct{ value string }

func (c *memCell) Get(ctx context.Context) (string, error)     { return c.value, nil }
func (c *memCell) Set(ctx context.Context, token string) error { c.value = token; return nil }
func (c *memCell) Clear(ctx context.Context) error             { c.value = ""; return nil }

// newTestServer assembles the full router against a throwaway upstream.
func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()

	upstream := httptest.NewServer(http.NewServeMux())
	t.Cleanup(upstream.Close)

	log := logger.Nop()
	sess := session.New(&memCell{}, log)
	client := api.New(upstream.URL, 5*time.Second, sess.Token, log)
	sync := syncer.New(client, log)

	renderer, err := web.NewRenderer(log)
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	cfg := &config.Config{
		ListenPort:     ":0",
		RequestTimeout: 5 * time.Second,
	}
	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Version:   "test",
		TimeNow:   time.Now,
		Session:   sess,
		Syncer:    sync,
		API:       client,
		Renderer:  renderer,
	}
	return New(cfg, log, d), sess
}

func TestRouterProtectsNotesView(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect for an anonymous visitor", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRouterServesPublicPages(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/login", "/register"} {
		rr := httptest.NewRecorder()
		srv.http.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200 without a session", path, rr.Code)
		}
	}
}

func TestRouterHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode healthz body: %v", err)
	}
	if body.Status != "ok" || body.Version != "test" {
		t.Errorf("healthz = %+v, want status ok and the injected version", body)
	}
}

func TestRouterUnknownPathRendersNotFound(t *testing.T) {
	srv, sess := newTestServer(t)
	sess.Login(context.Background(), "tok")

	rr := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
