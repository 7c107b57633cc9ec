package rag

import (
	"context"
	"fmt"
	"log"

	"CustomsRAG/app/configs"
	"CustomsRAG/app/documents"
)

const embedBatchSize = 32

// Client ties the chunk splitter, the embedding model and a vector store
// together: build once when no persisted index exists, otherwise reopen.
type Client struct {
	vectors    vectorStore
	model      embedder
	vectorSize int
}

func NewClient(cfg configs.IndexConfig, model embedder) (*Client, error) {
	var vectors vectorStore
	var err error
	switch cfg.Backend {
	case "qdrant":
		vectors, err = newQdrantStore(cfg)
	default:
		vectors, err = newSQLiteStore(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	return &Client{
		vectors:    vectors,
		model:      model,
		vectorSize: cfg.VectorSize,
	}, nil
}

// Init builds or reopens the index. On the reopen path neither the splitter
// nor the embedding service is touched; the persisted index is trusted even
// if the source documents have changed since it was built.
func (c *Client) Init(ctx context.Context, docs []documents.Document) error {
	alreadyExists, err := c.vectors.Ready(ctx, c.vectorSize)
	if err != nil {
		return err
	}
	if alreadyExists {
		log.Printf("📦 Reusing existing vector index; source changes since the last build are not picked up")
		return nil
	}

	chunks, err := splitDocuments(docs)
	if err != nil {
		return err
	}
	log.Printf("✂️ Split %d documents into %d chunks", len(docs), len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vecs, err := c.model.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}
		for i := range batch {
			batch[i].Vector = vecs[i]
		}

		if err := c.vectors.UpsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("persist chunks: %w", err)
		}
	}

	log.Printf("✅ Vector index built with %d chunks", len(chunks))
	return nil
}

// Search embeds the query and returns up to k chunks ordered by decreasing
// similarity. The query string is passed through unvalidated.
func (c *Client) Search(ctx context.Context, query string, k int) ([]VectorDoc, error) {
	vec, err := c.model.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.vectors.Query(ctx, vec, k)
}

func (c *Client) Close() error {
	return c.vectors.Close()
}
