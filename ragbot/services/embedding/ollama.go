// Package embedding maps text to vectors through an external embedding
// model. The model is a collaborator; any failure here surfaces to the
// retrieval pipeline as-is.
package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	httputils "ragbot/ragbot/utils/http"
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// OllamaClient implements Embedder against the Ollama embeddings API.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed generates an embedding for a single text.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	req := embedRequest{Model: c.model, Prompt: text}
	var resp embedResponse
	if err := httputils.PostJSON(ctx, c.client, c.baseURL+"/api/embeddings", req, &resp); err != nil {
		return nil, fmt.Errorf("calling ollama embeddings: %w", err)
	}
	return resp.Embedding, nil
}

// EmbedBatch embeds texts one by one. The Ollama embeddings endpoint takes a
// single prompt per call.
func (c *OllamaClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := c.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}
