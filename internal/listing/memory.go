package listing

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type Memory struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	listings map[uuid.UUID]Listing
}

func NewMemory() *Memory {
	return &Memory{listings: make(map[uuid.UUID]Listing)}
}

func (m *Memory) List(_ context.Context) ([]*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Listing, 0, len(m.order))
	for _, id := range m.order {
		l := m.listings[id]
		out = append(out, &l)
	}

	return out, nil
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.listings[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &l, nil
}

func (m *Memory) Create(_ context.Context, l *Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listings[l.ID]; !ok {
		m.order = append(m.order, l.ID)
	}

	m.listings[l.ID] = *l

	return nil
}
