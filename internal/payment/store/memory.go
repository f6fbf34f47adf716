package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

// Memory keeps the ledger of one session in process. Records are returned in
// insertion order.
type Memory struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	records map[uuid.UUID]*payment.Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[uuid.UUID]*payment.Record)}
}

func (m *Memory) ListRecords(_ context.Context) ([]*payment.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*payment.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id].Clone())
	}

	return out, nil
}

func (m *Memory) GetRecord(_ context.Context, id uuid.UUID) (*payment.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return nil, payment.ErrNotFound
	}

	return r.Clone(), nil
}

func (m *Memory) CreateRecords(_ context.Context, records []*payment.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if _, exists := m.records[r.ID]; exists {
			return fmt.Errorf("record %s already exists", r.ID)
		}
	}

	for _, r := range records {
		m.records[r.ID] = r.Clone()
		m.order = append(m.order, r.ID)
	}

	return nil
}

func (m *Memory) MarkPaid(_ context.Context, id uuid.UUID, fields payment.PaidFields) (*payment.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok {
		return nil, payment.ErrNotFound
	}

	if r.IsPaid() {
		return r.Clone(), payment.ErrAlreadyPaid
	}

	r.Status = payment.StatusPaid
	r.PaidDate = new(fields.PaidDate)
	r.Method = fields.Method
	r.TransactionID = fields.TransactionID

	return r.Clone(), nil
}
