package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CustomsRAG/app/models"
	"CustomsRAG/app/rag"
)

type stubRetriever struct {
	results []rag.VectorDoc
	err     error
	gotK    int
	gotQ    string
}

func (s *stubRetriever) Search(ctx context.Context, query string, k int) ([]rag.VectorDoc, error) {
	s.gotQ = query
	s.gotK = k
	return s.results, s.err
}

type stubGenerator struct {
	answer  string
	err     error
	calls   int
	gotMsgs []models.Message
	gotTemp float64
}

func (s *stubGenerator) Generate(ctx context.Context, messages []models.Message, temperature float64) (string, error) {
	s.calls++
	s.gotMsgs = messages
	s.gotTemp = temperature
	return s.answer, s.err
}

func chunks(texts ...string) []rag.VectorDoc {
	out := make([]rag.VectorDoc, len(texts))
	for i, text := range texts {
		out[i] = rag.VectorDoc{Content: text}
	}
	return out
}

func TestAnswerNoResults(t *testing.T) {
	gen := &stubGenerator{}
	a := New(&stubRetriever{}, gen, 5, 0)

	answer, err := a.Answer(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, NoRelevantDocuments, answer)
	assert.Zero(t, gen.calls, "no LLM call without retrieved chunks")
}

func TestAnswerPromptContents(t *testing.T) {
	ret := &stubRetriever{results: chunks("first chunk", "second chunk")}
	gen := &stubGenerator{answer: "| duty | 10% |"}
	a := New(ret, gen, 5, 0)

	answer, err := a.Answer(context.Background(), "duty on laptops?")
	require.NoError(t, err)
	assert.Equal(t, "| duty | 10% |", answer)

	assert.Equal(t, "duty on laptops?", ret.gotQ)
	assert.Equal(t, 5, ret.gotK)

	require.Equal(t, 1, gen.calls)
	assert.Equal(t, float64(0), gen.gotTemp)
	require.Len(t, gen.gotMsgs, 1)

	prompt := gen.gotMsgs[0].Content
	assert.Contains(t, prompt, "duty on laptops?")
	assert.Contains(t, prompt, "first chunk\n\nsecond chunk")
	assert.Contains(t, prompt, "Use ONLY the context")
}

func TestAnswerRetrieverError(t *testing.T) {
	gen := &stubGenerator{}
	a := New(&stubRetriever{err: errors.New("index gone")}, gen, 5, 0)

	_, err := a.Answer(context.Background(), "q")
	require.Error(t, err)
	assert.Zero(t, gen.calls)
}

func TestAnswerGeneratorErrorPropagates(t *testing.T) {
	a := New(
		&stubRetriever{results: chunks("ctx")},
		&stubGenerator{err: errors.New("quota exceeded")},
		5, 0,
	)

	_, err := a.Answer(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAnswerDefaultTopK(t *testing.T) {
	ret := &stubRetriever{results: chunks("c")}
	a := New(ret, &stubGenerator{}, 0, 0)

	_, err := a.Answer(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 5, ret.gotK)
}

func TestBuildContextTruncatesAtChunkBoundary(t *testing.T) {
	big := strings.Repeat("x", maxContextChars-10)
	docs := chunks(big, "this chunk no longer fits", "neither does this")

	block := buildContext(docs)
	assert.Equal(t, big, block)
}

func TestBuildContextFirstChunkAlwaysIncluded(t *testing.T) {
	huge := strings.Repeat("y", maxContextChars+500)

	block := buildContext(chunks(huge))
	assert.Equal(t, huge, block)
}
