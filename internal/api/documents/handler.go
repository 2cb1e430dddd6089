package documents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase IngestUsecase
}

func NewHandler(usecase IngestUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// LoadDocuments handles POST /load-documents
func (h *Handler) LoadDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LoadDocuments")

	var req entity.LoadDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "loading documents",
		zap.String("project_key", req.ProjectKey),
		zap.Int("youtube_url_count", len(req.YoutubeURLs)),
		zap.Int("web_url_count", len(req.WebURLs)),
	)

	resp, err := h.usecase.LoadDocuments(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "documents loaded successfully", zap.Int("chunks_loaded", resp.ChunksLoaded))
	h.respondJSON(w, http.StatusOK, resp)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrNoDocuments) {
		h.respondError(ctx, w, http.StatusBadRequest, "no documents were successfully loaded", err)
	} else if errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
