package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
	"github.com/BenedictKing/jina-sum/internal/biz/repo"
)

// openaiRepo implements the summary repository over an OpenAI-compatible
// chat-completion endpoint
type openaiRepo struct {
	client    *openai.Client
	model     string
	prompt    string
	qaPrompt  string
	maxTokens int
}

// NewOpenAIRepo creates a summary repository.
// prompt is prepended to page text for summarization; qaPrompt is the
// follow-up template with {content} and {question} placeholders.
func NewOpenAIRepo(apiBase, apiKey, model, prompt, qaPrompt string, maxWords int) repo.SummaryRepo {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = strings.TrimRight(apiBase, "/")
	}

	maxTokens := 2000
	if maxWords < maxTokens {
		maxTokens = maxWords
	}

	return &openaiRepo{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		prompt:    prompt,
		qaPrompt:  qaPrompt,
		maxTokens: maxTokens,
	}
}

// Summarize sends the configured prompt plus page text and returns the summary
func (r *openaiRepo) Summarize(ctx context.Context, text string) (string, error) {
	return r.complete(ctx, fmt.Sprintf("%s\n\n'''%s'''", r.prompt, text))
}

// Answer answers a follow-up question against the cached summary, with the
// raw page text appended when it is still available
func (r *openaiRepo) Answer(ctx context.Context, question, summary, content string) (string, error) {
	qaContext := summary
	if content != "" {
		qaContext = summary + "\n\n原文：\n" + content
	}
	prompt := strings.NewReplacer(
		"{content}", qaContext,
		"{question}", question,
	).Replace(r.qaPrompt)
	return r.complete(ctx, prompt)
}

func (r *openaiRepo) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return "", mapGenError(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.ErrEmptyResponse
	}
	return answer, nil
}

// mapGenError maps API failures onto the generation error taxonomy:
// 401 auth, 429 rate limit, everything else unreachable
func mapGenError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return fmt.Errorf("%w: %v", domain.ErrAuthFailure, err)
		case 429:
			return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrGenUnreachable, err)
}
