package chroma

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/rag"
	"go.uber.org/zap"
)

// MockConnector is an in-memory vector store used when ENABLE_MOCKS is set.
// It ranks by cosine similarity so retrieval stays meaningful in local runs.
type MockConnector struct {
	logger *zap.Logger

	mu          sync.Mutex
	collections map[string]string // name -> id
	records     map[string]map[string]rag.Record
	nextID      int
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger:      logger,
		collections: make(map[string]string),
		records:     make(map[string]map[string]rag.Record),
	}
}

func (m *MockConnector) Heartbeat(context.Context) error { return nil }

func (m *MockConnector) GetCollection(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.collections[name]
	if !ok {
		return "", fmt.Errorf("collection %s does not exist", name)
	}
	return id, nil
}

func (m *MockConnector) CreateCollection(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.collections[name]; ok {
		return id, nil
	}
	m.nextID++
	id := fmt.Sprintf("mock-col-%d", m.nextID)
	m.collections[name] = id
	m.records[id] = make(map[string]rag.Record)

	ctxzap.Info(ctx, "[MOCK] collection created", zap.String("collection", name))
	return id, nil
}

func (m *MockConnector) AddRecords(ctx context.Context, collectionID string, records []rag.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.records[collectionID]
	if !ok {
		return fmt.Errorf("unknown collection id %s", collectionID)
	}
	for _, r := range records {
		col[r.ID] = r
	}

	ctxzap.Debug(ctx, "[MOCK] records added",
		zap.String("collection_id", collectionID),
		zap.Int("record_count", len(records)),
	)
	return nil
}

func (m *MockConnector) QueryDocuments(ctx context.Context, collectionID string, embedding []float32, topK int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.records[collectionID]
	if !ok {
		return nil, fmt.Errorf("unknown collection id %s", collectionID)
	}

	type scored struct {
		doc   string
		score float64
	}
	ranked := make([]scored, 0, len(col))
	for _, r := range col {
		ranked = append(ranked, scored{doc: r.Document, score: cosine(embedding, r.Embedding)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score == ranked[j].score {
			return ranked[i].doc < ranked[j].doc
		}
		return ranked[i].score > ranked[j].score
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	out := make([]string, topK)
	for i := 0; i < topK; i++ {
		out[i] = ranked[i].doc
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
