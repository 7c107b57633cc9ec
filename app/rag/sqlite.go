package rag

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"
)

const indexFileName = "index.db"

// SQLiteStore persists the vector index in a single SQLite file under the
// configured index directory. Similarity search is a brute-force cosine scan,
// which is plenty for a fixed document set of this size.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	existed bool
}

func newSQLiteStore(dir string) (*SQLiteStore, error) {
	path := filepath.Join(dir, indexFileName)
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index at %s: %w", path, err)
	}

	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS chunks (
            id TEXT PRIMARY KEY,
            content TEXT NOT NULL,
            metadata TEXT NOT NULL,
            vector BLOB NOT NULL
        );
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chunks table: %w", err)
	}

	return &SQLiteStore{db: db, path: path, existed: existed}, nil
}

func (s *SQLiteStore) Ready(ctx context.Context, vectorSize int) (bool, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return false, err
	}
	return s.existed, nil
}

func (s *SQLiteStore) UpsertBatch(ctx context.Context, docs []VectorDoc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO chunks (id, content, metadata, vector) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, doc := range docs {
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata for chunk %s: %w", doc.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, doc.Content, string(metadata), encodeVector(doc.Vector)); err != nil {
			return fmt.Errorf("insert chunk %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, content, metadata, vector FROM chunks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		doc   VectorDoc
		score float64
	}

	var candidates []scored
	for rows.Next() {
		var id, content, metadataRaw string
		var blob []byte
		if err := rows.Scan(&id, &content, &metadataRaw, &blob); err != nil {
			return nil, err
		}

		var metadata map[string]any
		if err := json.Unmarshal([]byte(metadataRaw), &metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for chunk %s: %w", id, err)
		}

		vec := decodeVector(blob)
		candidates = append(candidates, scored{
			doc:   VectorDoc{ID: id, Content: content, Metadata: metadata, Vector: vec},
			score: cosineSimilarity(vector, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if k >= 0 && k < len(candidates) {
		candidates = candidates[:k]
	}

	out := make([]VectorDoc, len(candidates))
	for i, c := range candidates {
		out[i] = c.doc
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
