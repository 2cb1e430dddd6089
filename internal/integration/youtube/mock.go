package youtube

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

func (c *MockConnector) FetchTranscript(ctx context.Context, videoURL string) ([]entity.Document, error) {
	ctxzap.Info(ctx, "[MOCK] fetching transcript", zap.String("url", videoURL))

	segments := []Segment{
		{StartMs: 0, Text: "Welcome to the sprint planning walkthrough. Today we cover how to break an epic into tickets."},
		{StartMs: 30000, Text: "Each ticket needs an actionable title, acceptance criteria and a priority the team agrees on."},
	}
	documents := make([]entity.Document, 0, len(segments))
	for _, seg := range segments {
		documents = append(documents, entity.Document{
			Text:   seg.Text,
			Source: entity.SourceYoutube,
			Metadata: map[string]string{
				"url":      videoURL,
				"start_ms": fmt.Sprintf("%d", seg.StartMs),
			},
		})
	}
	return documents, nil
}
