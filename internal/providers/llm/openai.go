// Package llm talks to an OpenAI-compatible API for chat completion and
// embeddings. Both calls are retried with backoff.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/retry"
)

type Client struct {
	baseProvider
	cfg     *config.LLMConfig
	retrier *retry.Retrier
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey),
		cfg:          cfg,
		retrier:      retry.NewDefaultRetrier(),
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Generate sends the assembled prompt as the system message and returns the
// completion text. An empty completion is ErrGeneration.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": prompt},
		},
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
	}

	var content string
	err := c.retrier.Do(ctx, func() error {
		resp, err := c.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		content, err = parseChatResponse(resp)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return content, nil
}

// Embed returns the embedding vector for text. The dimension is fixed by
// the configured embedding model.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model": c.cfg.EmbeddingModel,
		"input": text,
	}

	var embedding []float32
	err := c.retrier.Do(ctx, func() error {
		resp, err := c.doRequest(ctx, http.MethodPost, "/v1/embeddings", payload)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		embedding, err = parseEmbeddingResponse(resp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	return embedding, nil
}

func parseChatResponse(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", core.ErrGeneration
	}
	return result.Choices[0].Message.Content, nil
}

func parseEmbeddingResponse(resp *http.Response) ([]float32, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, core.ErrEmbedding
	}
	return result.Data[0].Embedding, nil
}
