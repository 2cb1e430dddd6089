package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"go.uber.org/zap"
)

// FallbackContext is used when a request gathered no documents at all.
const FallbackContext = "Using general Jira ticket guidelines."

// tenantTopK is the number of chunks retrieved when a tenant collection is
// queried.
const tenantTopK = 5

// Assembler inserts chunks into vector collections and builds the bounded
// context string handed to the model.
type Assembler struct {
	store    VectorStore
	embedder Embedder
	logger   *zap.Logger
}

func NewAssembler(store VectorStore, embedder Embedder, logger *zap.Logger) *Assembler {
	return &Assembler{store: store, embedder: embedder, logger: logger}
}

// embedderFor salts embeddings for tenant collections; the default
// collection embeds unsalted.
func (a *Assembler) embedderFor(col *Collection) Embedder {
	if col.AccessToken == "" {
		return a.embedder
	}
	return NewSaltedEmbedder(a.embedder, col.AccessToken)
}

// InsertChunks embeds the chunks and writes them to the collection, tagged
// with their source kind and any inherited metadata.
func (a *Assembler) InsertChunks(ctx context.Context, col *Collection, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := a.embedderFor(col).Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(chunks), len(vectors))
	}

	records := make([]Record, len(chunks))
	for i, c := range chunks {
		metadata := map[string]string{"source": string(c.Source)}
		for k, v := range c.Metadata {
			metadata[k] = v
		}
		records[i] = Record{
			ID:        c.ID,
			Embedding: vectors[i],
			Document:  c.Text,
			Metadata:  metadata,
		}
	}

	if err := a.store.AddRecords(ctx, col.ID, records); err != nil {
		return fmt.Errorf("add records to %s: %w", col.Name, err)
	}

	ctxzap.Debug(ctx, "chunks inserted",
		zap.String("collection", col.Name),
		zap.Int("chunk_count", len(records)),
	)
	return nil
}

// BuildContext selects exactly one context strategy per request:
// with a collection the chunks are inserted and the prompt queried for the
// top matches; without one the chunk texts are concatenated directly; with
// no chunks at all the fixed fallback applies.
func (a *Assembler) BuildContext(ctx context.Context, col *Collection, chunks []entity.Chunk, prompt string) (string, error) {
	switch {
	case col != nil:
		if err := a.InsertChunks(ctx, col, chunks); err != nil {
			return "", err
		}
		return a.queryContext(ctx, col, prompt)

	case len(chunks) > 0:
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		return strings.Join(texts, "\n"), nil

	default:
		return FallbackContext, nil
	}
}

func (a *Assembler) queryContext(ctx context.Context, col *Collection, prompt string) (string, error) {
	vectors, err := a.embedderFor(col).Embed(ctx, []string{prompt})
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embed query: empty response")
	}

	docs, err := a.store.QueryDocuments(ctx, col.ID, vectors[0], tenantTopK)
	if err != nil {
		return "", fmt.Errorf("query collection %s: %w", col.Name, err)
	}

	ctxzap.Debug(ctx, "context retrieved",
		zap.String("collection", col.Name),
		zap.Int("chunk_count", len(docs)),
	)
	return strings.Join(docs, "\n"), nil
}
