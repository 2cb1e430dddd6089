package ticket

import (
	"context"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/rag"
)

// Generator produces a model completion for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CollectionResolver maps a tenant to its vector collection.
type CollectionResolver interface {
	Resolve(ctx context.Context, accessToken, projectKey string) (*rag.Collection, error)
}

// ContextAssembler turns fetched chunks into retrieval context.
type ContextAssembler interface {
	BuildContext(ctx context.Context, col *rag.Collection, chunks []entity.Chunk, prompt string) (string, error)
}

// DocumentFetcher gathers raw documents from the configured sources.
type DocumentFetcher interface {
	Fetch(ctx context.Context, req rag.FetchRequest) []entity.Document
}
