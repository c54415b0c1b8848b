package store

import (
	"context"
	"sync"

	"github.com/drinkslane/backend/internal/domain"
)

// MemorySlot is a process-local cache slot. It is the default store and
// the one used by tests.
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load returns the stored entry bytes, or ErrCacheMiss when empty.
func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, domain.ErrCacheMiss
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Store replaces the slot contents wholesale.
func (s *MemorySlot) Store(ctx context.Context, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.data = cp
	s.mu.Unlock()
	return nil
}

// Clear empties the slot.
func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
