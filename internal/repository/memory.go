package repository

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"caffenio/internal/domain"
)

const (
	ticketMin   = 1000
	ticketSpace = 9000
)

// MemoryStore in-memory хранилище заказов. Orders live for the lifetime of
// the process and are never deleted. All access goes through one RWMutex;
// ticket generation, id assignment and append happen under a single write
// lock so concurrent kiosks cannot mint duplicate tickets or ids.
type MemoryStore struct {
	mu          sync.RWMutex
	nextOrderID int64
	ordersByID  map[int64]domain.Order
	idByTicket  map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextOrderID: 1,
		ordersByID:  make(map[int64]domain.Order),
		idByTicket:  make(map[string]int64),
	}
}

var _ OrderRepository = (*MemoryStore)(nil)

// Create stores the order, assigning its internal id, a free 4-digit ticket
// number and CreatedAt. Fails with ErrTicketsExhausted when every ticket in
// the 1000-9999 space is already held by a stored order.
func (m *MemoryStore) Create(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticket, err := m.freeTicket()
	if err != nil {
		return err
	}

	o.ID = m.nextOrderID
	m.nextOrderID++
	o.TicketNumber = ticket
	o.CreatedAt = time.Now().UTC()

	m.ordersByID[o.ID] = *o
	m.idByTicket[ticket] = o.ID
	return nil
}

// freeTicket draws random 4-digit numbers until one is unused. Caller holds
// the write lock. The retry loop is fine while the store stays far below the
// 9000-ticket capacity; at capacity it returns an error instead of spinning.
func (m *MemoryStore) freeTicket() (string, error) {
	if len(m.idByTicket) >= ticketSpace {
		return "", ErrTicketsExhausted
	}
	for {
		ticket := fmt.Sprintf("%04d", ticketMin+rand.Intn(ticketSpace))
		if _, taken := m.idByTicket[ticket]; !taken {
			return ticket, nil
		}
	}
}

// List returns all stored orders, newest first.
func (m *MemoryStore) List(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.ordersByID))
	for _, o := range m.ordersByID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetByTicket(ctx context.Context, ticket string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.idByTicket[ticket]
	if !ok {
		return nil, ErrNotFound
	}
	o := m.ordersByID[id]
	// return copy
	return &o, nil
}

// UpdateStatus overwrites the status field unconditionally. There is no
// transition checking: the counter staff own the status.
func (m *MemoryStore) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.ordersByID[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.ordersByID[id] = o
	return nil
}
