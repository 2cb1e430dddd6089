package ticket

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers ticket routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate-ticket", h.GenerateTicket)

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", h.ListTickets)

		r.Route("/{ticket_id}", func(r chi.Router) {
			r.Get("/", h.GetTicket)
			r.Delete("/", h.DeleteTicket)
			r.Get("/export", h.ExportTicket)
		})
	})
}
