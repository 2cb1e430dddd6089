package ticket

import (
	"crypto/sha256"
	"encoding/hex"
)

// TicketID derives a stable identifier from the generation inputs, so
// repeating the same request addresses the same stored ticket.
func TicketID(prompt, projectKey string) string {
	sum := sha256.Sum256([]byte(prompt + projectKey))
	return hex.EncodeToString(sum[:])[:12]
}
