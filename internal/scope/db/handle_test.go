package db

import (
	"context"
	"errors"
	"testing"

	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
	"github.com/rs/zerolog"
)

type closeCounter struct {
	*MemStore
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestHandleStartsNotReady(t *testing.T) {
	h := NewHandle(zerolog.Nop())

	if h.Ready() {
		t.Error("new handle should not be ready")
	}
	if _, ok := h.Store(); ok {
		t.Error("Store() should report no connection")
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() on empty handle failed: %v", err)
	}
}

func TestHandleConnect(t *testing.T) {
	h := NewHandle(zerolog.Nop())
	mem := NewMemStore()

	done := h.Connect(context.Background(), func(context.Context) (Storage, error) {
		return mem, nil
	})
	if err := <-done; err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}

	if !h.Ready() {
		t.Fatal("handle should be ready after a successful connect")
	}
	store, _ := h.Store()
	if store != Storage(mem) {
		t.Error("Store() returned a different store")
	}
}

func TestHandleConnectFailureStaysDegraded(t *testing.T) {
	h := NewHandle(zerolog.Nop())
	boom := errors.New("connection refused")

	done := h.Connect(context.Background(), func(context.Context) (Storage, error) {
		return nil, boom
	})
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("expected connection error, got %v", err)
	}

	if h.Ready() {
		t.Error("handle should stay not ready after a failed connect")
	}
}

func TestHandleClose(t *testing.T) {
	h := NewHandle(zerolog.Nop())
	store := &closeCounter{MemStore: NewMemStore()}
	h.Set(store)

	if err := h.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if store.closed != 1 {
		t.Errorf("expected store closed once, got %d", store.closed)
	}
	if h.Ready() {
		t.Error("handle should not be ready after Close()")
	}

	// a connection that completes after shutdown is released right away
	late := &closeCounter{MemStore: NewMemStore()}
	h.Set(late)
	if late.closed != 1 || h.Ready() {
		t.Error("store set after Close() should be closed and not installed")
	}
}

func TestHandleServesInsertedEntries(t *testing.T) {
	h := NewHandle(zerolog.Nop())
	h.Set(NewMemStore())

	store, ok := h.Store()
	if !ok {
		t.Fatal("expected ready handle")
	}
	entry, _ := scores.NewEntry("x", "ace", 10, testNow)
	if err := store.Insert(context.Background(), entry); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
}
