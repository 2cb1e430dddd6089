package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketMemoryStoreAndGet(t *testing.T) {
	repo := NewTicketMemory()
	ctx := context.Background()

	ticket := entity.Ticket{
		ID:          "abc123def456",
		Title:       "Fix login redirect",
		Description: "Users land on a blank page after login.",
		Priority:    entity.PriorityHigh,
		Labels:      []string{"auth", "bug"},
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Store(ctx, ticket))

	got, err := repo.Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket, *got)
}

func TestTicketMemoryGetMissing(t *testing.T) {
	repo := NewTicketMemory()

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrTicketNotFound)
}

func TestTicketMemoryStoreOverwrites(t *testing.T) {
	repo := NewTicketMemory()
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, entity.Ticket{ID: "t1", Title: "old"}))
	require.NoError(t, repo.Store(ctx, entity.Ticket{ID: "t1", Title: "new"}))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestTicketMemoryListNewestFirst(t *testing.T) {
	repo := NewTicketMemory()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Store(ctx, entity.Ticket{ID: "older", CreatedAt: base}))
	require.NoError(t, repo.Store(ctx, entity.Ticket{ID: "newer", CreatedAt: base.Add(time.Hour)}))

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "newer", tickets[0].ID)
	assert.Equal(t, "older", tickets[1].ID)
}

func TestTicketMemoryDelete(t *testing.T) {
	repo := NewTicketMemory()
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, entity.Ticket{ID: "t1"}))
	require.NoError(t, repo.Delete(ctx, "t1"))

	_, err := repo.Get(ctx, "t1")
	assert.ErrorIs(t, err, entity.ErrTicketNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "t1"), entity.ErrTicketNotFound)
}
