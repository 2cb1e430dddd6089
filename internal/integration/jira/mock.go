package jira

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is the tracker stand-in used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) FetchProjectContext(ctx context.Context, baseURL, accessToken, projectKey string) ([]entity.Document, error) {
	ctxzap.Info(ctx, "[MOCK] fetching project context",
		zap.String("project_key", projectKey),
	)

	metadata := map[string]string{"project": projectKey}
	return []entity.Document{
		{
			Text: fmt.Sprintf("Project: Mock Project\nKey: %s\nDescription: A sample project used for local development\nProject Type: software",
				projectKey),
			Source:   entity.SourceJira,
			Metadata: metadata,
		},
		{
			Text: fmt.Sprintf("Issue: %s-1\nSummary: Set up CI pipeline\nDescription: No description\nStatus: In Progress\nPriority: High",
				projectKey),
			Source:   entity.SourceJira,
			Metadata: metadata,
		},
		{
			Text: fmt.Sprintf("Issue: %s-2\nSummary: Fix flaky login test\nDescription: The login test fails intermittently on CI\nStatus: To Do\nPriority: Medium",
				projectKey),
			Source:   entity.SourceJira,
			Metadata: metadata,
		},
	}, nil
}
