package rag

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"CustomsRAG/app/documents"
)

// Chunking is fixed: 1000-character windows with 200 characters of overlap
// between consecutive chunks of the same document.
const (
	chunkSize    = 1000
	chunkOverlap = 200
)

func splitDocuments(docs []documents.Document) ([]VectorDoc, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var chunks []VectorDoc
	for _, doc := range docs {
		parts, err := splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", doc.Source, err)
		}
		for i, part := range parts {
			metadata := map[string]any{
				"source": doc.Source,
				"chunk":  i,
			}
			for k, v := range doc.Metadata {
				metadata[k] = v
			}
			chunks = append(chunks, VectorDoc{
				ID:       uuid.New().String(),
				Content:  part,
				Metadata: metadata,
			})
		}
	}

	return chunks, nil
}
