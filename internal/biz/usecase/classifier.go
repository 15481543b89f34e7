package usecase

import (
	"github.com/BenedictKing/jina-sum/internal/biz/domain"
)

// ClassifierConfig is the trigger policy configuration
type ClassifierConfig struct {
	AutoSum        bool
	Group          bool // handle group chats at all
	SumTrigger     string
	QATrigger      string
	WhiteURLList   []string
	BlackURLList   []string
	BlackGroupList []string
}

// Classifier decides, per incoming message, whether to summarize, answer a
// follow-up, or ignore. Classification is computed fresh from the message
// text, the chat mode, and the session cache; no state of its own.
type Classifier struct {
	cache *SessionCache
	cfg   ClassifierConfig
}

// NewClassifier creates a classifier around a session cache
func NewClassifier(cache *SessionCache, cfg ClassifierConfig) *Classifier {
	return &Classifier{cache: cache, cfg: cfg}
}

// Classify inspects one message and returns the decision.
// Rule order, first match wins:
//  1. blacklisted group -> Ignore, before everything else
//  2. follow-up keyword with a live cached summary -> FollowUp
//  3. summarize keyword + URL -> ExplicitSummarize
//  4. bare URL: private+auto_sum -> AutoSummarize; group -> pend the link
//     (and AutoSummarize when auto_sum is on)
//  5. bare summarize keyword in a group with a pending link -> ExplicitSummarize
//
// Filter-rejected URLs degrade to Ignore with no reply.
func (c *Classifier) Classify(msg *domain.IncomingMessage) domain.Decision {
	isGroup := msg.ChatType == domain.ChatTypeGroup
	if isGroup && !c.cfg.Group {
		return domain.Ignore
	}
	if isGroup && GroupBlocked(msg.GroupID, c.cfg.BlackGroupList) {
		return domain.Ignore
	}

	text := msg.Text
	if isGroup {
		text = StripMention(text)
	}
	// Shared-link cards carry the URL inside XML
	if url, ok := ExtractSharedURL(text); ok {
		text = url
	}

	scope := msg.Scope()
	trig := ParseTrigger(text, c.cfg.SumTrigger, c.cfg.QATrigger)

	if trig.Kind == TriggerFollowUp {
		if sum := c.cache.GetSummary(scope); sum != nil {
			return domain.Decision{
				Kind:     domain.DecisionFollowUp,
				Question: trig.Question,
				Summary:  sum,
			}
		}
		// Follow-up window expired: silent, let the message fall through
		return domain.Ignore
	}

	if trig.Kind == TriggerSummarize && trig.URL != "" {
		return c.summarizeIfAllowed(domain.DecisionExplicitSummarize, trig.URL)
	}

	if url, ok := FirstURL(text); ok {
		if isGroup {
			c.cache.PutPendingLink(msg.GroupID, url)
			if c.cfg.AutoSum {
				return c.summarizeIfAllowed(domain.DecisionAutoSummarize, url)
			}
			return domain.Ignore
		}
		if c.cfg.AutoSum {
			return c.summarizeIfAllowed(domain.DecisionAutoSummarize, url)
		}
		return domain.Ignore
	}

	if trig.Kind == TriggerSummarize && isGroup {
		if url, ok := c.cache.TakePendingLink(msg.GroupID); ok {
			return c.summarizeIfAllowed(domain.DecisionExplicitSummarize, url)
		}
	}

	return domain.Ignore
}

func (c *Classifier) summarizeIfAllowed(kind domain.DecisionKind, url string) domain.Decision {
	if !Allowed(url, c.cfg.WhiteURLList, c.cfg.BlackURLList) {
		return domain.Ignore
	}
	return domain.Decision{Kind: kind, URL: url}
}
