package documents

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document loading routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/load-documents", h.LoadDocuments)
}
