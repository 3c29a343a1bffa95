package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/domain"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
)

type memCell struct{ value string }

func (c *memCell) Get(ctx context.Context) (string, error)     { return c.value, nil }
func (c *memCell) Set(ctx context.Context, token string) error { c.value = token; return nil }
func (c *memCell) Clear(ctx context.Context) error             { c.value = ""; return nil }

func TestManualTriggerRefreshes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notes" {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/notes", "/notes/archived":
			_ = json.NewEncoder(w).Encode([]domain.Note{})
		case "/notes/categories":
			_ = json.NewEncoder(w).Encode([]domain.Category{})
		}
	}))
	t.Cleanup(srv.Close)

	sess := session.New(&memCell{}, logger.Nop())
	sess.Login(context.Background(), "tok")

	client := api.New(srv.URL, 5*time.Second, sess.Token, logger.Nop())
	sync := syncer.New(client, logger.Nop())

	trigger := make(chan struct{}, 1)
	ref := NewRefresher(sync, sess, logger.Nop(), 0, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ref.Start(ctx)
	defer ref.Stop()

	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for hits.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("manual trigger never caused a refresh")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRefreshSkippedWithoutSession(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	sess := session.New(&memCell{}, logger.Nop())

	client := api.New(srv.URL, 5*time.Second, sess.Token, logger.Nop())
	sync := syncer.New(client, logger.Nop())

	trigger := make(chan struct{}, 1)
	ref := NewRefresher(sync, sess, logger.Nop(), 0, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ref.Start(ctx)
	defer ref.Stop()

	trigger <- struct{}{}
	time.Sleep(100 * time.Millisecond)

	if hits.Load() != 0 {
		t.Errorf("refresh without session hit the API %d times, want 0", hits.Load())
	}
}
