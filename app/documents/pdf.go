package documents

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/documentloaders"
)

// loadPDF parses one PDF file into one Document per page.
func loadPDF(ctx context.Context, path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	loaded, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(loaded))
	for _, d := range loaded {
		metadata := map[string]any{}
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
