package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"

	"go.uber.org/zap"
)

const (
	maxHistoryTurns  = 20
	placeholderReply = "[Placeholder response] The language model service is currently unavailable, so no generated answer could be produced. Please try again later."
)

type ChatRequest struct {
	Message string               `json:"message" validate:"required,max=4000"`
	History []models.ChatMessage `json:"history" validate:"omitempty,dive"`
}

// RateLimiter counts calls per key within a window
type RateLimiter interface {
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type ChatOptions struct {
	SystemPrompt string
	TopK         int
	RateLimit    int
	RateWindow   time.Duration
}

// ChatService answers questions from search passages. Collaborator outages degrade the answer
// instead of failing the request.
type ChatService interface {
	Answer(ctx context.Context, tenantID string, actor models.Actor, req ChatRequest) (*models.ChatResponse, error)
}

type chatService struct {
	search     SearchClient
	completion CompletionClient
	limiter    RateLimiter
	opts       ChatOptions
	logger     *zap.Logger
}

func NewChatService(search SearchClient, completion CompletionClient, limiter RateLimiter, opts ChatOptions, logger *zap.Logger) ChatService {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 30
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	return &chatService{
		search:     search,
		completion: completion,
		limiter:    limiter,
		opts:       opts,
		logger:     logger,
	}
}

func (s *chatService) Answer(ctx context.Context, tenantID string, actor models.Actor, req ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, common.Validation("message", "message is required")
	}

	if s.limiter != nil {
		key := fmt.Sprintf("chat:%s:%s", tenantID, strings.ToLower(actor.Email))
		limited, err := s.limiter.IsRateLimited(ctx, key, s.opts.RateLimit, s.opts.RateWindow)
		if err != nil {
			s.logger.Warn("chat rate limiter unavailable", zap.Error(err))
		} else if limited {
			return nil, common.RateLimited("too many chat requests, slow down")
		}
	}

	history := trimHistory(req.History)
	degraded := false

	var passages []models.SearchPassage
	if s.search != nil {
		found, err := s.search.Search(ctx, tenantID, message, s.opts.TopK)
		if err != nil {
			s.logUpstream("search", err)
			degraded = true
		} else {
			passages = found
		}
	}

	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.ChatRoleSystem, Content: s.systemPrompt(passages)})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.ChatRoleUser, Content: message})

	reply := placeholderReply
	if s.completion == nil {
		degraded = true
	} else if answer, err := s.completion.Complete(ctx, messages); err != nil {
		s.logUpstream("completion", err)
		degraded = true
	} else {
		reply = answer
	}

	updated := append(history,
		models.ChatMessage{Role: models.ChatRoleUser, Content: message},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply},
	)

	return &models.ChatResponse{
		Reply:    reply,
		Sources:  sourceIDs(passages),
		History:  trimHistory(updated),
		Degraded: degraded,
	}, nil
}

func (s *chatService) systemPrompt(passages []models.SearchPassage) string {
	var b strings.Builder
	b.WriteString(s.opts.SystemPrompt)
	b.WriteString("\n\nContext:\n")
	if len(passages) == 0 {
		b.WriteString("(no relevant documents found)\n")
		return b.String()
	}
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] %s", i+1, p.SourceID)
		if p.Title != "" {
			fmt.Fprintf(&b, " - %s", p.Title)
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(p.Content))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (s *chatService) logUpstream(service string, err error) {
	if errors.Is(err, ErrNotConfigured) {
		s.logger.Debug("chat collaborator not configured", zap.String("service", service))
		return
	}
	s.logger.Warn("chat collaborator unavailable, degrading answer", zap.String("service", service), zap.Error(err))
}

// trimHistory keeps the most recent user and assistant turns
func trimHistory(history []models.ChatMessage) []models.ChatMessage {
	kept := make([]models.ChatMessage, 0, len(history))
	for _, m := range history {
		if (m.Role == models.ChatRoleUser || m.Role == models.ChatRoleAssistant) && strings.TrimSpace(m.Content) != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) > maxHistoryTurns {
		kept = kept[len(kept)-maxHistoryTurns:]
	}
	return kept
}

// sourceIDs deduplicates source ids keeping first-seen order
func sourceIDs(passages []models.SearchPassage) []string {
	seen := make(map[string]struct{}, len(passages))
	ids := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.SourceID == "" {
			continue
		}
		if _, ok := seen[p.SourceID]; ok {
			continue
		}
		seen[p.SourceID] = struct{}{}
		ids = append(ids, p.SourceID)
	}
	return ids
}
