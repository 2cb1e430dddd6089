package ingest

import (
	"context"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/rag"
)

// CollectionResolver maps a tenant to its vector collection, or hands out
// the shared default collection for unscoped loads.
type CollectionResolver interface {
	Resolve(ctx context.Context, accessToken, projectKey string) (*rag.Collection, error)
	Default(ctx context.Context) (*rag.Collection, error)
}

// ChunkInserter writes chunks into a vector collection.
type ChunkInserter interface {
	InsertChunks(ctx context.Context, col *rag.Collection, chunks []entity.Chunk) error
}

// DocumentFetcher gathers raw documents from the configured sources.
type DocumentFetcher interface {
	Fetch(ctx context.Context, req rag.FetchRequest) []entity.Document
}
