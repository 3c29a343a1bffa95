package session

import (
	"context"
	"errors"
	"testing"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
)

// memCell is an in-memory Cell used to test the store without Redis.
type memCell struct {
	value  string
	getErr error
	setErr error
	clrErr error
	sets   int
	clears int
}

func (c *memCell) Get(ctx context.Context) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.value, nil
}

func (c *memCell) Set(ctx context.Context, token string) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.value = token
	return nil
}

func (c *memCell) Clear(ctx context.Context) error {
	c.clears++
	if c.clrErr != nil {
		return c.clrErr
	}
	c.value = ""
	return nil
}

func TestLoginPersistsAndExposesToken(t *testing.T) {
	cell := &memCell{}
	store := New(cell, logger.Nop())

	store.Login(context.Background(), "tok-123")

	if got := store.Token(); got != "tok-123" {
		t.Errorf("Token() = %q, want %q", got, "tok-123")
	}
	if cell.value != "tok-123" {
		t.Errorf("durable cell = %q, want %q", cell.value, "tok-123")
	}
}

func TestLogoutClearsBothCells(t *testing.T) {
	cell := &memCell{value: "tok-123"}
	store := New(cell, logger.Nop())
	store.Login(context.Background(), "tok-123")

	store.Logout(context.Background())

	if got := store.Token(); got != "" {
		t.Errorf("Token() after logout = %q, want empty", got)
	}
	if cell.value != "" {
		t.Errorf("durable cell after logout = %q, want empty", cell.value)
	}
	if cell.clears != 1 {
		t.Errorf("durable clears = %d, want 1", cell.clears)
	}
}

func TestLoginSurvivesPersistenceFailure(t *testing.T) {
	cell := &memCell{setErr: errors.New("redis down")}
	store := New(cell, logger.Nop())

	store.Login(context.Background(), "tok-123")

	// In-memory session stays usable even when durable storage fails.
	if got := store.Token(); got != "tok-123" {
		t.Errorf("Token() = %q, want %q", got, "tok-123")
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name      string
		cell      *memCell
		wantToken string
		wantErr   bool
	}{
		{
			name:      "persisted token is loaded",
			cell:      &memCell{value: "tok-persisted"},
			wantToken: "tok-persisted",
		},
		{
			name:      "absent key is not an error",
			cell:      &memCell{},
			wantToken: "",
		},
		{
			name:    "storage failure surfaces",
			cell:    &memCell{getErr: errors.New("redis down")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(tt.cell, logger.Nop())
			err := store.Restore(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Restore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := store.Token(); got != tt.wantToken {
				t.Errorf("Token() = %q, want %q", got, tt.wantToken)
			}
		})
	}
}

func TestSubscribeNotifiesOnEveryChange(t *testing.T) {
	store := New(&memCell{}, logger.Nop())

	var seen []string
	store.Subscribe(func(token string) {
		seen = append(seen, token)
	})

	ctx := context.Background()
	store.Login(ctx, "tok-1")
	store.Login(ctx, "tok-2")
	store.Logout(ctx)

	want := []string{"tok-1", "tok-2", ""}
	if len(seen) != len(want) {
		t.Fatalf("subscriber saw %d notifications, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}
