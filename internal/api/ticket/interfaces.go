package ticket

import (
	"context"

	"github.com/sprintai/ticket-backend/internal/entity"
)

type TicketUsecase interface {
	GenerateTicket(ctx context.Context, req *entity.TicketRequest) (*entity.Ticket, error)
	GetTicket(ctx context.Context, id string) (*entity.Ticket, error)
	ListTickets(ctx context.Context) ([]*entity.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	ExportTicket(ctx context.Context, id string, format string) ([]byte, string, string, error)
}
