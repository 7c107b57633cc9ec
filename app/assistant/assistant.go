package assistant

import (
	"context"
	"fmt"
	"strings"

	"CustomsRAG/app/models"
	"CustomsRAG/app/rag"
)

// NoRelevantDocuments is returned when retrieval comes back empty; the LLM is
// not called in that case.
const NoRelevantDocuments = "❌ No relevant documents found."

const promptTemplate = "Use ONLY the context to answer. Also provide sample calculations. Generate output in table.\n\nContext:\n%s\n\nQuestion: %s"

// maxContextChars caps the context block sent to the LLM. Truncation happens
// at chunk boundaries: a retrieved chunk is either fully included or dropped.
const maxContextChars = 24000

type retriever interface {
	Search(ctx context.Context, query string, k int) ([]rag.VectorDoc, error)
}

type generator interface {
	Generate(ctx context.Context, messages []models.Message, temperature float64) (string, error)
}

// Assistant answers a question by retrieving the top-k most similar chunks
// and sending a single deterministic prompt to the LLM.
type Assistant struct {
	rag         retriever
	model       generator
	topK        int
	temperature float64
}

func New(r retriever, model generator, topK int, temperature float64) *Assistant {
	if topK <= 0 {
		topK = 5
	}
	return &Assistant{
		rag:         r,
		model:       model,
		topK:        topK,
		temperature: temperature,
	}
}

// Answer returns the LLM's raw text response, verbatim. Retrieval and
// generation failures propagate to the caller: the interaction aborts but
// the process lives on.
func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	results, err := a.rag.Search(ctx, query, a.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	if len(results) == 0 {
		return NoRelevantDocuments, nil
	}

	prompt := fmt.Sprintf(promptTemplate, buildContext(results), query)
	answer, err := a.model.Generate(ctx, []models.Message{{Role: "user", Content: prompt}}, a.temperature)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}

// buildContext joins chunk texts with blank lines, stopping before the block
// would exceed maxContextChars. The first chunk is always included.
func buildContext(results []rag.VectorDoc) string {
	var b strings.Builder
	for _, doc := range results {
		if b.Len() > 0 && b.Len()+len("\n\n")+len(doc.Content) > maxContextChars {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(doc.Content)
	}
	return b.String()
}
