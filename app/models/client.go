package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"CustomsRAG/app/configs"
	"CustomsRAG/app/utils/restclient"
)

const (
	chatEndpoint      = "/v1/chat/completions"
	embeddingEndpoint = "/v1/embeddings"
)

var _ Interface = &LLMClient{}

// LLMClient speaks the OpenAI-compatible chat-completions and embeddings wire
// format. Every call is a single attempt: failures propagate to the caller.
type LLMClient struct {
	restClient      *restclient.RestClient
	cache           sync.Map
	model           string
	embeddingsModel string
}

func NewLLMClient(cfg configs.LLMConfig) *LLMClient {
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	return &LLMClient{
		restClient:      restclient.NewRestClient(cfg.BaseURL, headers, cfg.Timeout()),
		model:           cfg.Model,
		embeddingsModel: cfg.EmbeddingModel,
	}
}

func (mc *LLMClient) Generate(ctx context.Context, messages []Message, temperature float64) (string, error) {
	payload := requestPayload{
		Model:       mc.model,
		Messages:    messages,
		Temperature: temperature,
	}

	body, status, err := mc.restClient.Post(ctx, chatEndpoint, payload, nil)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("chat request: status %d: %s", status, string(body))
	}

	var response ResponseLLM
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("empty LLM response")
	}

	return response.Choices[0].Message.Content, nil
}
