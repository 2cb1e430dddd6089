package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sprintai/ticket-backend/internal/api/docs"
	documentsapi "github.com/sprintai/ticket-backend/internal/api/documents"
	"github.com/sprintai/ticket-backend/internal/api/middleware"
	ticketapi "github.com/sprintai/ticket-backend/internal/api/ticket"
	"github.com/sprintai/ticket-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	ticketHandler *ticketapi.Handler,
	documentsHandler *documentsapi.Handler,
	apiKey string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Everything else requires the API key
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey))

		ticketapi.RegisterRoutes(r, ticketHandler)
		documentsapi.RegisterRoutes(r, documentsHandler)
	})

	return r
}
