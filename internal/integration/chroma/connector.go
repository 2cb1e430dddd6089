package chroma

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/integration/common"
	"github.com/sprintai/ticket-backend/internal/rag"
	pkghttp "github.com/sprintai/ticket-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to a Chroma server over its v1 REST API and implements
// rag.VectorStore.
type Connector struct {
	config    config.ChromaConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ChromaConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type collectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createCollectionRequest struct {
	Name        string `json:"name"`
	GetOrCreate bool   `json:"get_or_create"`
}

type addRequest struct {
	IDs        []string            `json:"ids"`
	Embeddings [][]float32         `json:"embeddings"`
	Metadatas  []map[string]string `json:"metadatas"`
	Documents  []string            `json:"documents"`
}

type queryRequest struct {
	QueryEmbeddings [][]float32 `json:"query_embeddings"`
	NResults        int         `json:"n_results"`
	Include         []string    `json:"include"`
}

type queryResponse struct {
	IDs       [][]string `json:"ids"`
	Documents [][]string `json:"documents"`
}

// Heartbeat probes the server; used at startup only.
func (c *Connector) Heartbeat(ctx context.Context) error {
	var resp map[string]any
	if err := c.connector.DoRequest(ctx, http.MethodGet, "/api/v1/heartbeat", nil, &resp); err != nil {
		return fmt.Errorf("chroma heartbeat: %w", err)
	}
	return nil
}

func (c *Connector) GetCollection(ctx context.Context, name string) (string, error) {
	var resp collectionResponse
	endpoint := "/api/v1/collections/" + url.PathEscape(name)
	if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", fmt.Errorf("get collection %s: %w", name, err)
	}
	return resp.ID, nil
}

func (c *Connector) CreateCollection(ctx context.Context, name string) (string, error) {
	req := createCollectionRequest{Name: name, GetOrCreate: true}
	var resp collectionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, "/api/v1/collections", req, &resp); err != nil {
		return "", fmt.Errorf("create collection %s: %w", name, err)
	}

	ctxzap.Info(ctx, "collection created", zap.String("collection", name))
	return resp.ID, nil
}

func (c *Connector) AddRecords(ctx context.Context, collectionID string, records []rag.Record) error {
	if len(records) == 0 {
		return nil
	}

	req := addRequest{
		IDs:        make([]string, len(records)),
		Embeddings: make([][]float32, len(records)),
		Metadatas:  make([]map[string]string, len(records)),
		Documents:  make([]string, len(records)),
	}
	for i, r := range records {
		req.IDs[i] = r.ID
		req.Embeddings[i] = r.Embedding
		req.Metadatas[i] = r.Metadata
		req.Documents[i] = r.Document
	}

	endpoint := fmt.Sprintf("/api/v1/collections/%s/add", url.PathEscape(collectionID))
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, nil); err != nil {
		return fmt.Errorf("add %d records: %w", len(records), err)
	}
	return nil
}

func (c *Connector) QueryDocuments(ctx context.Context, collectionID string, embedding []float32, topK int) ([]string, error) {
	req := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        topK,
		Include:         []string{"documents"},
	}

	var resp queryResponse
	endpoint := fmt.Sprintf("/api/v1/collections/%s/query", url.PathEscape(collectionID))
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	if len(resp.Documents) == 0 {
		return nil, nil
	}
	return resp.Documents[0], nil
}
