package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/sprintai/ticket-backend/internal/entity"
)

var _ TicketRepository = &TicketMemory{}

// TicketMemory keeps tickets in a process-local map. It backs the service
// when mocks are enabled and doubles as a test repository.
type TicketMemory struct {
	mu      sync.RWMutex
	tickets map[string]entity.Ticket
}

func NewTicketMemory() *TicketMemory {
	return &TicketMemory{
		tickets: make(map[string]entity.Ticket),
	}
}

func (r *TicketMemory) Store(_ context.Context, ticket entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *TicketMemory) Get(_ context.Context, id string) (*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, entity.ErrTicketNotFound
	}
	return &ticket, nil
}

func (r *TicketMemory) List(_ context.Context) ([]*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tickets := make([]*entity.Ticket, 0, len(r.tickets))
	for id := range r.tickets {
		ticket := r.tickets[id]
		tickets = append(tickets, &ticket)
	}
	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID < tickets[j].ID
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

func (r *TicketMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return entity.ErrTicketNotFound
	}
	delete(r.tickets, id)
	return nil
}
