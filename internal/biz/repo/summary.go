package repo

import "context"

// SummaryRepo is the language-model interface
type SummaryRepo interface {
	// Summarize sends the configured prompt plus page text and returns the summary
	Summarize(ctx context.Context, text string) (string, error)

	// Answer answers a follow-up question given the cached summary and,
	// when still cached, the raw page text. content may be empty.
	Answer(ctx context.Context, question, summary, content string) (string, error)
}
