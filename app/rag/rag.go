package rag

import "context"

// VectorDoc is one embedded chunk as stored in and returned by the index.
type VectorDoc struct {
	ID       string
	Content  string
	Metadata map[string]any
	Vector   []float32
}

type vectorStore interface {
	// Ready reports whether the store already holds a persisted index. When
	// it does, the caller must not rebuild: the existing index is reused
	// as-is for the rest of the process lifetime.
	Ready(ctx context.Context, vectorSize int) (bool, error)
	UpsertBatch(ctx context.Context, docs []VectorDoc) error
	Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error)
	Close() error
}

type embedder interface {
	EmbedText(ctx context.Context, input string) ([]float32, error)
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}
