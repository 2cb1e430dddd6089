package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase TicketUsecase
}

func NewHandler(usecase TicketUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// GenerateTicket handles POST /generate-ticket
func (h *Handler) GenerateTicket(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateTicket")

	var req entity.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "generating ticket",
		zap.String("project_key", req.ProjectKey),
		zap.Int("youtube_url_count", len(req.YoutubeURLs)),
		zap.Int("web_url_count", len(req.WebURLs)),
	)

	ticket, err := h.usecase.GenerateTicket(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "ticket generated successfully", zap.String("ticket_id", ticket.ID))
	h.respondJSON(w, http.StatusOK, ticket)
}

// ListTickets handles GET /tickets
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListTickets")

	tickets, err := h.usecase.ListTickets(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "tickets listed successfully", zap.Int("count", len(tickets)))
	h.respondJSON(w, http.StatusOK, &entity.ListTicketsResponse{
		Tickets: tickets,
	})
}

// GetTicket handles GET /tickets/{ticket_id}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticketID := chi.URLParam(r, "ticket_id")

	ctx = logger.AddFields(ctx,
		zap.String("ticket_id", ticketID),
		zap.String("action", "GetTicket"),
	)

	ticket, err := h.usecase.GetTicket(ctx, ticketID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "ticket fetched successfully")
	h.respondJSON(w, http.StatusOK, ticket)
}

// DeleteTicket handles DELETE /tickets/{ticket_id}
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticketID := chi.URLParam(r, "ticket_id")

	ctx = logger.AddFields(ctx,
		zap.String("ticket_id", ticketID),
		zap.String("action", "DeleteTicket"),
	)

	if err := h.usecase.DeleteTicket(ctx, ticketID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "ticket deleted successfully")
	h.respondJSON(w, http.StatusOK, &entity.DeleteTicketResponse{
		Status: "deleted",
	})
}

// ExportTicket handles GET /tickets/{ticket_id}/export?format=markdown|docx|pdf
func (h *Handler) ExportTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticketID := chi.URLParam(r, "ticket_id")
	format := r.URL.Query().Get("format")

	ctx = logger.AddFields(ctx,
		zap.String("ticket_id", ticketID),
		zap.String("format", format),
		zap.String("action", "ExportTicket"),
	)

	data, contentType, filename, err := h.usecase.ExportTicket(ctx, ticketID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "ticket exported successfully", zap.Int("size_bytes", len(data)))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
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
	if errors.Is(err, entity.ErrTicketNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "ticket not found", err)
	} else if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrModelResponse) {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to parse ticket data from response", err)
	} else if errors.Is(err, entity.ErrStorageVerification) {
		h.respondError(ctx, w, http.StatusInternalServerError, "ticket storage verification failed", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
