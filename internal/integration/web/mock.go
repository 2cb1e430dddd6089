package web

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"go.uber.org/zap"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (c *MockConnector) RenderPages(ctx context.Context, urls []string) ([]entity.Document, error) {
	ctxzap.Info(ctx, "[MOCK] rendering pages", zap.Int("url_count", len(urls)))

	documents := make([]entity.Document, 0, len(urls))
	for i, u := range urls {
		documents = append(documents, entity.Document{
			Text: fmt.Sprintf(
				"Mock page %d. A good ticket has a clear title, reproduction steps and an expected outcome.",
				i+1,
			),
			Source:   entity.SourceWeb,
			Metadata: map[string]string{"url": u},
		})
	}
	return documents, nil
}
