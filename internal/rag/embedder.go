package rag

import (
	"context"
	"fmt"
)

// AuthTag is the tenant salt appended to every text before embedding.
// Embeddings computed for different access tokens are therefore not
// comparable, which is what keeps tenant collections isolated beyond their
// names. Removing this changes retrieval silently; keep it explicit.
func AuthTag(accessToken string) string {
	return fmt.Sprintf(" [AUTH:%s]", hash8(accessToken))
}

// SaltedEmbedder wraps an Embedder, appending the tenant tag to every input.
// The same salt must be applied to stored documents and to queries.
type SaltedEmbedder struct {
	base Embedder
	tag  string
}

func NewSaltedEmbedder(base Embedder, accessToken string) *SaltedEmbedder {
	return &SaltedEmbedder{base: base, tag: AuthTag(accessToken)}
}

func (e *SaltedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	salted := make([]string, len(texts))
	for i, t := range texts {
		salted[i] = t + e.tag
	}
	return e.base.Embed(ctx, salted)
}
