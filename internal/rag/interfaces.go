package rag

import (
	"context"

	"github.com/sprintai/ticket-backend/internal/entity"
)

// VectorStore is the subset of the vector database the retrieval flow needs.
// Collections are addressed by id once resolved by name.
type VectorStore interface {
	GetCollection(ctx context.Context, name string) (id string, err error)
	CreateCollection(ctx context.Context, name string) (id string, err error)
	AddRecords(ctx context.Context, collectionID string, records []Record) error
	QueryDocuments(ctx context.Context, collectionID string, embedding []float32, topK int) ([]string, error)
}

// Record is one embedded chunk as stored in a collection.
type Record struct {
	ID        string
	Embedding []float32
	Document  string
	Metadata  map[string]string
}

// Embedder turns texts into embedding vectors, one per input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// TrackerConnector reads project context from the issue tracker.
type TrackerConnector interface {
	FetchProjectContext(ctx context.Context, baseURL, accessToken, projectKey string) ([]entity.Document, error)
}

// TranscriptConnector fetches a video transcript as time-bounded segments.
type TranscriptConnector interface {
	FetchTranscript(ctx context.Context, videoURL string) ([]entity.Document, error)
}

// PageConnector renders web pages, executing client-side scripts.
type PageConnector interface {
	RenderPages(ctx context.Context, urls []string) ([]entity.Document, error)
}
