package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

func (mc *LLMClient) EmbedText(ctx context.Context, input string) ([]float32, error) {
	if v, ok := mc.cache.Load(input); ok {
		if emb, ok2 := v.([]float32); ok2 {
			return emb, nil
		}
	}

	vecs, err := mc.EmbedTexts(ctx, []string{input})
	if err != nil {
		return nil, err
	}

	mc.cache.Store(input, vecs[0])
	return vecs[0], nil
}

func (mc *LLMClient) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	if mc.embeddingsModel == "" {
		return nil, errors.New("embeddings model is empty; configure llm.embedding_model")
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	payload := embeddingRequestPayload{
		Model: mc.embeddingsModel,
		Input: inputs,
	}

	body, status, err := mc.restClient.Post(ctx, embeddingEndpoint, payload, nil)
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("embeddings request: status %d: %s", status, string(body))
	}

	var out embeddingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse embeddings json: %w", err)
	}
	if len(out.Data) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(out.Data), len(inputs))
	}

	// The API is allowed to return items out of order; index is authoritative.
	vecs := make([][]float32, len(inputs))
	for _, item := range out.Data {
		if item.Index < 0 || item.Index >= len(inputs) {
			return nil, fmt.Errorf("embedding index %d out of range", item.Index)
		}
		vecs[item.Index] = item.Embedding
	}

	for i, vec := range vecs {
		if vec == nil {
			return nil, fmt.Errorf("no embedding returned for input %d", i)
		}
	}

	return vecs, nil
}
