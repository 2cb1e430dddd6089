package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/integration/common"
	pkghttp "github.com/sprintai/ticket-backend/pkg/http"
	"go.uber.org/zap"
)

const (
	embeddingsEndpoint = "/v1/embeddings"
	chatEndpoint       = "/v1/chat/completions"
)

type Connector struct {
	config    config.OpenAIConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.OpenAIConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one vector per input text, in input order.
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := embeddingsRequest{Model: c.config.EmbedModel, Input: texts}
	var resp embeddingsResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, embeddingsEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings response has %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embeddings response index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	ctxzap.Debug(ctx, "texts embedded", zap.Int("input_count", len(texts)))
	return out, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the rendered instruction prompt to the chat model and
// returns its raw text output.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "invoking generation model",
		zap.String("model", c.config.ChatModel),
		zap.Int("prompt_length", len(prompt)),
	)

	req := chatRequest{
		Model:       c.config.ChatModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	var resp chatResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, chatEndpoint, req, &resp); err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "generation completed", zap.Int("response_length", len(content)))
	return content, nil
}
