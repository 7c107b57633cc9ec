package rag

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CustomsRAG/app/configs"
	"CustomsRAG/app/documents"
)

// fakeEmbedder maps texts onto a 3-dimensional space by keyword so ranking
// is predictable without a real embedding service.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) embed(input string) []float32 {
	vec := []float32{0, 0, 1}
	if strings.Contains(input, "laptop") {
		vec = []float32{1, 0, 0}
	} else if strings.Contains(input, "gold") {
		vec = []float32{0, 1, 0}
	}
	return vec
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, input string) ([]float32, error) {
	f.calls++
	return f.embed(input), nil
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	f.calls += len(inputs)
	out := make([][]float32, len(inputs))
	for i, input := range inputs {
		out[i] = f.embed(input)
	}
	return out, nil
}

func testIndexConfig(dir string) configs.IndexConfig {
	return configs.IndexConfig{
		Backend:    "sqlite",
		Path:       dir,
		Collection: "customs",
		VectorSize: 3,
	}
}

func TestClientBuildsOnceThenReopens(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "rag_db")

	docs := []documents.Document{
		{Content: "Importing a laptop attracts basic customs duty.", Source: "a.pdf"},
		{Content: "Importing gold attracts a higher duty rate.", Source: "b.csv"},
	}

	builder := &fakeEmbedder{}
	client, err := NewClient(testIndexConfig(dir), builder)
	require.NoError(t, err)
	require.NoError(t, client.Init(ctx, docs))
	assert.Positive(t, builder.calls, "fresh index must embed the chunks")
	require.NoError(t, client.Close())

	// Second run over the same directory: the splitter and the embedding
	// service must stay untouched until the first query.
	reopener := &fakeEmbedder{}
	client, err = NewClient(testIndexConfig(dir), reopener)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Init(ctx, docs))
	assert.Zero(t, reopener.calls, "reopen path must not re-embed")

	results, err := client.Search(ctx, "duty on a laptop", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reopener.calls, "only the query gets embedded")
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "laptop")
}

func TestClientSearchOrdering(t *testing.T) {
	ctx := context.Background()

	client, err := NewClient(testIndexConfig(filepath.Join(t.TempDir(), "rag_db")), &fakeEmbedder{})
	require.NoError(t, err)
	defer client.Close()

	docs := []documents.Document{
		{Content: "gold import duty table", Source: "gold.csv"},
		{Content: "laptop import duty table", Source: "laptop.csv"},
		{Content: "unrelated shipping manifest", Source: "other.csv"},
	}
	require.NoError(t, client.Init(ctx, docs))

	results, err := client.Search(ctx, "how much duty on gold", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Content, "gold")
}

func TestSplitDocuments(t *testing.T) {
	long := strings.Repeat("Customs duty applies to imported goods. ", 80) // ~3200 chars
	docs := []documents.Document{
		{Content: long, Source: "long.pdf", Metadata: map[string]any{"page": 3}},
		{Content: "short row", Source: "table.csv"},
	}

	chunks, err := splitDocuments(docs)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 3)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), chunkSize)
		assert.NotEmpty(t, chunk.ID)
		assert.NotEmpty(t, chunk.Metadata["source"])
	}

	assert.Equal(t, "long.pdf", chunks[0].Metadata["source"])
	assert.Equal(t, 0, chunks[0].Metadata["chunk"])
	assert.Equal(t, 3, chunks[0].Metadata["page"])

	last := chunks[len(chunks)-1]
	assert.Equal(t, "table.csv", last.Metadata["source"])
	assert.Equal(t, "short row", last.Content)
}
