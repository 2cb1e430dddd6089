package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/textsplit"
	"github.com/sprintai/ticket-backend/internal/pkg/validator"
	"github.com/sprintai/ticket-backend/internal/rag"
	"go.uber.org/zap"
)

// IngestUsecase implements document loading into vector collections
type IngestUsecase struct {
	resolver  CollectionResolver
	fetcher   DocumentFetcher
	inserter  ChunkInserter
	splitter  *textsplit.Splitter
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUsecase creates a new ingest use case
func NewUsecase(
	resolver CollectionResolver,
	fetcher DocumentFetcher,
	inserter ChunkInserter,
	splitter *textsplit.Splitter,
	validator *validator.Validator,
	logger *zap.Logger,
) *IngestUsecase {
	return &IngestUsecase{
		resolver:  resolver,
		fetcher:   fetcher,
		inserter:  inserter,
		splitter:  splitter,
		validator: validator,
		logger:    logger,
	}
}

// LoadDocuments fetches the requested sources, chunks them and stores the
// chunks in the tenant collection, or in the shared default collection when
// the request carries no tenant identifiers.
func (uc *IngestUsecase) LoadDocuments(
	ctx context.Context,
	req *entity.LoadDocumentsRequest,
) (*entity.LoadDocumentsResponse, error) {
	if err := uc.validator.ValidateLoadDocumentsRequest(req); err != nil {
		return nil, err
	}

	docs := uc.fetcher.Fetch(ctx, rag.FetchRequest{
		ProjectKey:  req.ProjectKey,
		AccessToken: req.AccessToken,
		JiraBaseURL: req.JiraBaseURL,
		YoutubeURLs: req.YoutubeURLs,
		WebURLs:     req.WebURLs,
	})
	if len(docs) == 0 {
		return nil, entity.ErrNoDocuments
	}

	chunks := rag.WithContentIDs(rag.ChunkDocuments(uc.splitter, docs))
	chunks = annotateBatch(chunks, req.ProjectKey)

	var col *rag.Collection
	var err error
	if req.HasProjectScope() {
		col, err = uc.resolver.Resolve(ctx, req.AccessToken, req.ProjectKey)
	} else {
		col, err = uc.resolver.Default(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve collection: %w", err)
	}

	if err := uc.inserter.InsertChunks(ctx, col, chunks); err != nil {
		return nil, fmt.Errorf("insert chunks: %w", err)
	}

	ctxzap.Info(ctx, "documents loaded",
		zap.Int("document_count", len(docs)),
		zap.Int("chunk_count", len(chunks)),
		zap.String("collection", col.Name),
	)

	return &entity.LoadDocumentsResponse{
		Status:       "success",
		Message:      fmt.Sprintf("Successfully loaded %d document chunks", len(chunks)),
		ChunksLoaded: len(chunks),
	}, nil
}

// annotateBatch stamps every chunk with the load batch and, when present,
// the project the load was scoped to.
func annotateBatch(chunks []entity.Chunk, projectKey string) []entity.Chunk {
	batchID := uuid.New().String()
	for i := range chunks {
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = make(map[string]string)
		}
		chunks[i].Metadata["batch"] = batchID
		if projectKey != "" {
			chunks[i].Metadata["project"] = projectKey
		}
	}
	return chunks
}
