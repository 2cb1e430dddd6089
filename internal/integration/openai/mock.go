package openai

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is the model stand-in used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Embed returns deterministic pseudo-vectors derived from the text content,
// so retrieval behaves consistently across runs without a provider.
func (m *MockConnector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding texts", zap.Int("input_count", len(texts)))

	out := make([][]float32, len(texts))
	for i, t := range texts {
		sum := sha256.Sum256([]byte(t))
		vec := make([]float32, 8)
		for j := range vec {
			vec[j] = float32(sum[j]) / 255
		}
		out[i] = vec
	}
	return out, nil
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating ticket text", zap.Int("prompt_length", len(prompt)))

	title := "Mock generated ticket"
	body := map[string]any{
		"title":       title,
		"description": "Acceptance criteria: implement the requested change, cover it with tests, verify on supported browsers.",
		"priority":    "Medium",
		"labels":      []string{"mock", "generated"},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal mock ticket: %w", err)
	}
	return string(raw), nil
}
