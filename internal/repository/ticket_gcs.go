package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/sprintai/ticket-backend/internal/entity"
	"google.golang.org/api/iterator"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	Store(ctx context.Context, ticket entity.Ticket) error
	Get(ctx context.Context, id string) (*entity.Ticket, error)
	List(ctx context.Context) ([]*entity.Ticket, error)
	Delete(ctx context.Context, id string) error
}

var _ TicketRepository = &TicketGCS{}

// TicketGCS implements TicketRepository on a Cloud Storage bucket. Tickets
// live under <service_type>/tickets/<ticket_id>.json so several ticketing
// backends can share one bucket.
type TicketGCS struct {
	bucket      *storage.BucketHandle
	serviceType string
}

func NewTicketGCS(client *storage.Client, bucketName, serviceType string) *TicketGCS {
	return &TicketGCS{
		bucket:      client.Bucket(bucketName),
		serviceType: serviceType,
	}
}

func (r *TicketGCS) objectKey(id string) string {
	return fmt.Sprintf("%s/tickets/%s.json", r.serviceType, id)
}

func (r *TicketGCS) Store(ctx context.Context, ticket entity.Ticket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}

	writer := r.bucket.Object(r.objectKey(ticket.ID)).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("write ticket object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("commit ticket object: %w", err)
	}
	return nil
}

func (r *TicketGCS) Get(ctx context.Context, id string) (*entity.Ticket, error) {
	reader, err := r.bucket.Object(r.objectKey(id)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, entity.ErrTicketNotFound
		}
		return nil, fmt.Errorf("open ticket object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read ticket object: %w", err)
	}

	var ticket entity.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("unmarshal ticket: %w", err)
	}
	return &ticket, nil
}

func (r *TicketGCS) List(ctx context.Context) ([]*entity.Ticket, error) {
	prefix := fmt.Sprintf("%s/tickets/", r.serviceType)
	it := r.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var tickets []*entity.Ticket
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list ticket objects: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}

		id := strings.TrimSuffix(strings.TrimPrefix(attrs.Name, prefix), ".json")
		ticket, err := r.Get(ctx, id)
		if err != nil {
			// An object deleted between listing and reading is not an
			// error for the listing as a whole.
			if errors.Is(err, entity.ErrTicketNotFound) {
				continue
			}
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

func (r *TicketGCS) Delete(ctx context.Context, id string) error {
	err := r.bucket.Object(r.objectKey(id)).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return entity.ErrTicketNotFound
		}
		return fmt.Errorf("delete ticket object: %w", err)
	}
	return nil
}
