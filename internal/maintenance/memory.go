package maintenance

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type Memory struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	requests map[uuid.UUID]Request
}

func NewMemory() *Memory {
	return &Memory{requests: make(map[uuid.UUID]Request)}
}

func (m *Memory) List(_ context.Context) ([]*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Request, 0, len(m.order))
	for _, id := range m.order {
		r := m.requests[id]
		out = append(out, &r)
	}

	return out, nil
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &r, nil
}

func (m *Memory) Create(_ context.Context, r *Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}

	m.requests[r.ID] = *r

	return nil
}

func (m *Memory) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok {
		return ErrNotFound
	}

	r.Status = status
	m.requests[id] = r

	return nil
}
