package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/formatter"
	"github.com/sprintai/ticket-backend/internal/pkg/textsplit"
	"github.com/sprintai/ticket-backend/internal/pkg/validator"
	"github.com/sprintai/ticket-backend/internal/rag"
	"github.com/sprintai/ticket-backend/internal/repository"
	"go.uber.org/zap"
)

// TicketUsecase implements ticket generation and lifecycle logic
type TicketUsecase struct {
	resolver       CollectionResolver
	fetcher        DocumentFetcher
	assembler      ContextAssembler
	generator      Generator
	splitter       *textsplit.Splitter
	ticketRepo     repository.TicketRepository
	validator      *validator.Validator
	formatters     *formatter.Factory
	persistTickets bool
	logger         *zap.Logger
}

// NewUsecase creates a new ticket use case
func NewUsecase(
	resolver CollectionResolver,
	fetcher DocumentFetcher,
	assembler ContextAssembler,
	generator Generator,
	splitter *textsplit.Splitter,
	ticketRepo repository.TicketRepository,
	validator *validator.Validator,
	persistTickets bool,
	logger *zap.Logger,
) *TicketUsecase {
	return &TicketUsecase{
		resolver:       resolver,
		fetcher:        fetcher,
		assembler:      assembler,
		generator:      generator,
		splitter:       splitter,
		ticketRepo:     ticketRepo,
		validator:      validator,
		formatters:     formatter.NewFactory(),
		persistTickets: persistTickets,
		logger:         logger,
	}
}

// GenerateTicket runs the full generation flow: fetch context, chunk it,
// build the retrieval context, invoke the model, parse the result and
// persist it with a read-back verification.
func (uc *TicketUsecase) GenerateTicket(
	ctx context.Context,
	req *entity.TicketRequest,
) (*entity.Ticket, error) {
	if err := uc.validator.ValidateTicketRequest(req); err != nil {
		return nil, err
	}

	var col *rag.Collection
	if req.HasProjectScope() {
		resolved, err := uc.resolver.Resolve(ctx, req.AccessToken, req.ProjectKey)
		if err != nil {
			return nil, fmt.Errorf("resolve collection: %w", err)
		}
		col = resolved
	}

	docs := uc.fetcher.Fetch(ctx, rag.FetchRequest{
		ProjectKey:          req.ProjectKey,
		AccessToken:         req.AccessToken,
		JiraBaseURL:         req.JiraBaseURL,
		YoutubeURLs:         req.YoutubeURLs,
		WebURLs:             req.WebURLs,
		IncludeDefaultGuide: col != nil,
	})

	chunks := rag.WithOrdinalIDs(rag.ChunkDocuments(uc.splitter, docs))

	retrievalContext, err := uc.assembler.BuildContext(ctx, col, chunks, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	ctxzap.Info(ctx, "retrieval context assembled",
		zap.Int("document_count", len(docs)),
		zap.Int("chunk_count", len(chunks)),
		zap.Bool("tenant_collection", col != nil),
	)

	response, err := uc.generator.Generate(ctx, BuildPrompt(retrievalContext, req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("generate completion: %w", err)
	}

	ticket, err := ParseModelResponse(response)
	if err != nil {
		return nil, err
	}

	ticket.ID = TicketID(req.Prompt, req.ProjectKey)
	ticket.CreatedAt = time.Now().UTC()
	if req.ProjectKey != "" {
		projectKey := req.ProjectKey
		ticket.ProjectKey = &projectKey
	}

	if uc.persistTickets {
		if err := uc.persistVerified(ctx, *ticket); err != nil {
			return nil, err
		}
	}

	ctxzap.Info(ctx, "ticket generated",
		zap.String("ticket_id", ticket.ID),
		zap.String("priority", string(ticket.Priority)),
		zap.Bool("persisted", uc.persistTickets),
	)
	return ticket, nil
}

// persistVerified stores the ticket and reads it back; a write that cannot
// be read back is reported as a storage failure rather than a success.
func (uc *TicketUsecase) persistVerified(ctx context.Context, ticket entity.Ticket) error {
	if err := uc.ticketRepo.Store(ctx, ticket); err != nil {
		return fmt.Errorf("store ticket: %w", err)
	}

	stored, err := uc.ticketRepo.Get(ctx, ticket.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageVerification, err)
	}
	if stored.ID != ticket.ID || stored.Title != ticket.Title {
		return fmt.Errorf("%w: stored ticket does not match", entity.ErrStorageVerification)
	}
	return nil
}

func (uc *TicketUsecase) GetTicket(ctx context.Context, id string) (*entity.Ticket, error) {
	ticket, err := uc.ticketRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

func (uc *TicketUsecase) ListTickets(ctx context.Context) ([]*entity.Ticket, error) {
	tickets, err := uc.ticketRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (uc *TicketUsecase) DeleteTicket(ctx context.Context, id string) error {
	if err := uc.ticketRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	ctxzap.Info(ctx, "ticket deleted", zap.String("ticket_id", id))
	return nil
}

// ExportTicket renders a stored ticket in the requested format and returns
// the document bytes together with content type and a download filename.
func (uc *TicketUsecase) ExportTicket(
	ctx context.Context,
	id string,
	rawFormat string,
) ([]byte, string, string, error) {
	format, err := uc.validator.ValidateExportFormat(rawFormat)
	if err != nil {
		return nil, "", "", err
	}

	ticket, err := uc.ticketRepo.Get(ctx, id)
	if err != nil {
		return nil, "", "", fmt.Errorf("get ticket: %w", err)
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", entity.ErrInvalidFormat, err)
	}

	data, err := f.Format(*ticket)
	if err != nil {
		return nil, "", "", fmt.Errorf("format ticket: %w", err)
	}

	filename := fmt.Sprintf("ticket_%s%s", ticket.ID, f.FileExtension())
	return data, f.ContentType(), filename, nil
}
