package documents

import (
	"context"

	"github.com/sprintai/ticket-backend/internal/entity"
)

type IngestUsecase interface {
	LoadDocuments(ctx context.Context, req *entity.LoadDocumentsRequest) (*entity.LoadDocumentsResponse, error)
}
