package rag

import (
	"crypto/sha256"
	"encoding/hex"
)

// hash8 returns the first 8 hex characters of the SHA-256 of s. Used both
// for tenant collection suffixes and content-derived chunk ids.
func hash8(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
