package documents

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/documentloaders"
)

// loadCSV parses one CSV file into one Document per row. Row content is the
// loader's "column: value" rendering, one line per column.
func loadCSV(ctx context.Context, path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	loaded, err := documentloaders.NewCSV(f).Load(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(loaded))
	for i, d := range loaded {
		metadata := map[string]any{"row": i + 1}
		for k, v := range d.Metadata {
			metadata[k] = v
		}
		docs = append(docs, Document{
			Content:  d.PageContent,
			Source:   path,
			Metadata: metadata,
		})
	}

	return docs, nil
}
