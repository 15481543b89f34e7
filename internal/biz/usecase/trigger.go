package usecase

import "strings"

// TriggerKind enumerates the trigger grammar
type TriggerKind int

const (
	// TriggerNone means no keyword trigger; the message may still carry a bare URL
	TriggerNone TriggerKind = iota
	// TriggerSummarize is the explicit summarize keyword, with or without a URL
	TriggerSummarize
	// TriggerFollowUp is the question keyword with a non-empty question
	TriggerFollowUp
)

// Trigger is the parsed trigger phrase of one message
type Trigger struct {
	Kind     TriggerKind
	URL      string // summarize target; empty for the bare keyword form
	Question string // follow-up question suffix
}

// ParseTrigger parses the message against the trigger grammar:
// "<qaTrigger><question>", "<sumTrigger> <url>", or the bare sumTrigger.
// Pure function, independent of any cache state.
func ParseTrigger(text, sumTrigger, qaTrigger string) Trigger {
	text = strings.TrimSpace(text)

	if qaTrigger != "" && strings.HasPrefix(text, qaTrigger) {
		question := strings.TrimSpace(strings.TrimPrefix(text, qaTrigger))
		if question != "" {
			return Trigger{Kind: TriggerFollowUp, Question: question}
		}
		// Empty question is not a follow-up
		return Trigger{Kind: TriggerNone}
	}

	if sumTrigger != "" && strings.Contains(text, sumTrigger) {
		rest := strings.TrimSpace(strings.Replace(text, sumTrigger, "", 1))
		if rest == "" {
			return Trigger{Kind: TriggerSummarize}
		}
		if url, ok := FirstURL(rest); ok {
			return Trigger{Kind: TriggerSummarize, URL: url}
		}
		return Trigger{Kind: TriggerNone}
	}

	return Trigger{Kind: TriggerNone}
}
