package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fleethvac/internal/config"
	"fleethvac/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by collaborators that lack endpoint settings
var ErrNotConfigured = errors.New("collaborator not configured")

// SearchClient returns the top passages for a query
type SearchClient interface {
	Search(ctx context.Context, tenantID, query string, topK int) ([]models.SearchPassage, error)
}

// CompletionClient produces an assistant reply for a conversation
type CompletionClient interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

type searchClient struct {
	http   *resty.Client
	cfg    config.SearchConfig
	logger *zap.Logger
}

// NewSearchClient talks to an Azure AI Search style index over REST
func NewSearchClient(cfg config.SearchConfig, logger *zap.Logger) SearchClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("api-key", cfg.APIKey)

	return &searchClient{http: client, cfg: cfg, logger: logger}
}

type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
	Filter string `json:"filter,omitempty"`
}

type searchDocument struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"@search.score"`
}

type searchResponse struct {
	Value []searchDocument `json:"value"`
}

type upstreamError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *searchClient) Search(ctx context.Context, tenantID, query string, topK int) ([]models.SearchPassage, error) {
	if !c.cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	body := searchRequest{Search: query, Top: topK}
	if c.cfg.FilterField != "" && tenantID != "" {
		body.Filter = fmt.Sprintf("%s eq '%s'", c.cfg.FilterField, strings.ReplaceAll(tenantID, "'", "''"))
	}

	var result searchResponse
	var failure upstreamError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.cfg.APIVersion).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/indexes/" + url.PathEscape(c.cfg.Index) + "/docs/search")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search returned %d: %s", resp.StatusCode(), failure.Error.Message)
	}

	passages := make([]models.SearchPassage, 0, len(result.Value))
	for _, doc := range result.Value {
		sourceID := doc.Source
		if sourceID == "" {
			sourceID = doc.ID
		}
		passages = append(passages, models.SearchPassage{
			SourceID: sourceID,
			Title:    doc.Title,
			Content:  doc.Content,
			Score:    doc.Score,
		})
	}
	c.logger.Debug("search completed", zap.String("tenant_id", tenantID), zap.Int("hits", len(passages)))
	return passages, nil
}

type completionClient struct {
	http   *resty.Client
	cfg    config.CompletionConfig
	logger *zap.Logger
}

// NewCompletionClient talks to an Azure OpenAI chat-completions deployment
func NewCompletionClient(cfg config.CompletionConfig, logger *zap.Logger) CompletionClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("api-key", cfg.APIKey)

	return &completionClient{http: client, cfg: cfg, logger: logger}
}

type completionRequest struct {
	Messages    []models.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message      models.ChatMessage `json:"message"`
		FinishReason string             `json:"finish_reason"`
	} `json:"choices"`
}

func (c *completionClient) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	if !c.cfg.Enabled() {
		return "", ErrNotConfigured
	}

	var result completionResponse
	var failure upstreamError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.cfg.APIVersion).
		SetBody(completionRequest{Messages: messages, MaxTokens: c.cfg.MaxTokens, Temperature: c.cfg.Temperature}).
		SetResult(&result).
		SetError(&failure).
		Post("/openai/deployments/" + url.PathEscape(c.cfg.Deployment) + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("completion returned %d: %s", resp.StatusCode(), failure.Error.Message)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", errors.New("completion returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
