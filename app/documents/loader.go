package documents

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"CustomsRAG/app/configs"
)

const fetchTimeout = 20 * time.Second

// Loader reads the configured PDF and CSV files from disk and fetches the
// configured URLs. A missing file or a failed fetch is never fatal: the
// source is recorded in the manifest and ingestion continues.
type Loader struct {
	pdfs       []string
	csvs       []string
	urls       []string
	httpClient *http.Client
}

func NewLoader(cfg configs.SourcesConfig) *Loader {
	return &Loader{
		pdfs:       cfg.PDFs,
		csvs:       cfg.CSVs,
		urls:       cfg.URLs,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// LoadAll returns every successfully loaded document in source order: PDFs,
// then CSVs, then URLs, each group in configured order.
func (l *Loader) LoadAll(ctx context.Context) ([]Document, Manifest) {
	var docs []Document
	var manifest Manifest

	for _, path := range l.pdfs {
		loaded, err := loadPDF(ctx, path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("⚠️ PDF not found: %s", path)
			manifest.add("pdf", path, StatusSkipped, "file not found", 0)
		case err != nil:
			log.Printf("⚠️ Failed to load PDF %s: %v", path, err)
			manifest.add("pdf", path, StatusFailed, err.Error(), 0)
		default:
			docs = append(docs, loaded...)
			manifest.add("pdf", path, StatusLoaded, "", len(loaded))
		}
	}

	for _, path := range l.csvs {
		loaded, err := loadCSV(ctx, path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("⚠️ CSV not found: %s", path)
			manifest.add("csv", path, StatusSkipped, "file not found", 0)
		case err != nil:
			log.Printf("⚠️ Failed to load CSV %s: %v", path, err)
			manifest.add("csv", path, StatusFailed, err.Error(), 0)
		default:
			docs = append(docs, loaded...)
			manifest.add("csv", path, StatusLoaded, "", len(loaded))
		}
	}

	for _, rawURL := range l.urls {
		loaded, err := l.loadURL(ctx, rawURL)
		if err != nil {
			log.Printf("⚠️ Failed to load URL %s: %v", rawURL, err)
			manifest.add("url", rawURL, StatusFailed, err.Error(), 0)
			continue
		}
		docs = append(docs, loaded...)
		manifest.add("url", rawURL, StatusLoaded, "", len(loaded))
	}

	return docs, manifest
}
