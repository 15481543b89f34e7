package domain

// DecisionKind enumerates what the classifier decided for a message
type DecisionKind int

const (
	// DecisionIgnore means no reply and no side effect
	DecisionIgnore DecisionKind = iota
	// DecisionAutoSummarize means a URL should be summarized without an explicit trigger
	DecisionAutoSummarize
	// DecisionExplicitSummarize means the user asked for a summary with the trigger keyword
	DecisionExplicitSummarize
	// DecisionFollowUp means the message is a question about the cached summary
	DecisionFollowUp
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAutoSummarize:
		return "auto_summarize"
	case DecisionExplicitSummarize:
		return "explicit_summarize"
	case DecisionFollowUp:
		return "follow_up"
	default:
		return "ignore"
	}
}

// Decision is the classifier's verdict for one incoming message.
// Produced fresh per message, never persisted.
type Decision struct {
	Kind     DecisionKind
	URL      string         // set for summarize decisions
	Question string         // set for follow-up decisions
	Summary  *CachedSummary // set for follow-up decisions
}

// Ignore is the terminal no-op decision
var Ignore = Decision{Kind: DecisionIgnore}

// IncomingMessage is what the host runtime delivers for classification
type IncomingMessage struct {
	Text     string
	ChatType ChatType
	SenderID string
	GroupID  string // empty for private chat
}

// Scope returns the cache scope for the message sender
func (m *IncomingMessage) Scope() ChatScope {
	if m.ChatType == ChatTypeGroup {
		return GroupScope(m.GroupID, m.SenderID)
	}
	return PrivateScope(m.SenderID)
}
