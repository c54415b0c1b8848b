package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/drinkslane/backend/internal/domain"
)

func TestMemorySlot(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()

	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("Load on empty slot = %v, want ErrCacheMiss", err)
	}

	payload := []byte(`{"version":"v2"}`)
	if err := slot.Store(ctx, payload); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Load = %q, want %q", got, payload)
	}

	// Mutating the returned slice must not corrupt the slot.
	got[0] = 'X'
	again, _ := slot.Load(ctx)
	if string(again) != string(payload) {
		t.Error("slot contents shared memory with a caller")
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Load after clear = %v, want ErrCacheMiss", err)
	}
}

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "catalog.json")
	slot := NewFileSlot(path)

	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("Load of missing file = %v, want ErrCacheMiss", err)
	}

	payload := []byte(`{"version":"v2"}`)
	if err := slot.Store(ctx, payload); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Load = %q, want %q", got, payload)
	}

	// The write path must not leave its temp file behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after store")
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := slot.Clear(ctx); err != nil {
		t.Errorf("Clear of a missing file = %v, want nil", err)
	}
	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Load after clear = %v, want ErrCacheMiss", err)
	}
}

func TestFileSlot_Overwrite(t *testing.T) {
	ctx := context.Background()
	slot := NewFileSlot(filepath.Join(t.TempDir(), "catalog.json"))

	if err := slot.Store(ctx, []byte("first")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := slot.Store(ctx, []byte("second")); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}
	got, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Load = %q, want the replacement entry", got)
	}
}
