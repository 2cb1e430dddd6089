package rag

import (
	"fmt"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/textsplit"
)

// ChunkDocuments splits each document and carries its provenance onto the
// resulting chunks. IDs are assigned separately by the caller depending on
// how the chunks will be persisted.
func ChunkDocuments(splitter *textsplit.Splitter, docs []entity.Document) []entity.Chunk {
	var chunks []entity.Chunk
	for _, doc := range docs {
		for _, text := range splitter.Split(doc.Text) {
			chunks = append(chunks, entity.Chunk{
				Text:     text,
				Source:   doc.Source,
				Metadata: doc.Metadata,
			})
		}
	}
	return chunks
}

// WithOrdinalIDs assigns generation-path ids: doc_0, doc_1, ...
func WithOrdinalIDs(chunks []entity.Chunk) []entity.Chunk {
	for i := range chunks {
		chunks[i].ID = fmt.Sprintf("doc_%d", i)
	}
	return chunks
}

// WithContentIDs assigns content-hash ids so re-uploading identical text
// overwrites the existing record instead of duplicating it.
func WithContentIDs(chunks []entity.Chunk) []entity.Chunk {
	for i := range chunks {
		chunks[i].ID = "doc_" + hash8(chunks[i].Text)
	}
	return chunks
}
