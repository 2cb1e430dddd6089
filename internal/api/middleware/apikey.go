package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/response"
)

const apiKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key header does not match the
// configured key. The check runs before any handler logic.
func APIKey(key string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				ctxzap.Warn(r.Context(), "rejected request with invalid API key")
				response.JSON(w, http.StatusForbidden, entity.ErrorResponse{
					Error:   http.StatusText(http.StatusForbidden),
					Message: "Invalid API Key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
