package usecase

import (
	"testing"
	"time"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
)

func testConfig() ClassifierConfig {
	return ClassifierConfig{
		AutoSum:    true,
		Group:      true,
		SumTrigger: "总结",
		QATrigger:  "问",
	}
}

func newTestClassifier(cfg ClassifierConfig) (*Classifier, *SessionCache, *fakeClock) {
	cache, clock := newTestCache(15*time.Minute, 15*time.Minute)
	return NewClassifier(cache, cfg), cache, clock
}

func privateMsg(text string) *domain.IncomingMessage {
	return &domain.IncomingMessage{Text: text, ChatType: domain.ChatTypeP2P, SenderID: "user-1"}
}

func groupMsg(groupID, senderID, text string) *domain.IncomingMessage {
	return &domain.IncomingMessage{Text: text, ChatType: domain.ChatTypeGroup, SenderID: senderID, GroupID: groupID}
}

func TestClassify_PrivateAutoSummarize(t *testing.T) {
	c, _, _ := newTestClassifier(testConfig())

	dec := c.Classify(privateMsg("https://example.com/a"))
	if dec.Kind != domain.DecisionAutoSummarize {
		t.Fatalf("Expected auto summarize, got %s", dec.Kind)
	}
	if dec.URL != "https://example.com/a" {
		t.Errorf("Unexpected URL: %s", dec.URL)
	}
}

func TestClassify_PrivateAutoSumDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AutoSum = false
	c, _, _ := newTestClassifier(cfg)

	if dec := c.Classify(privateMsg("https://example.com/a")); dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore with auto_sum off, got %s", dec.Kind)
	}

	// Explicit trigger still works
	dec := c.Classify(privateMsg("总结 https://example.com/a"))
	if dec.Kind != domain.DecisionExplicitSummarize {
		t.Errorf("Expected explicit summarize, got %s", dec.Kind)
	}
}

func TestClassify_ExplicitTriggerWithURL(t *testing.T) {
	c, _, _ := newTestClassifier(testConfig())

	for _, text := range []string{
		"总结 https://example.com/a",
		"总结https://example.com/a",
		"帮我总结一下 https://example.com/a",
	} {
		dec := c.Classify(privateMsg(text))
		if dec.Kind != domain.DecisionExplicitSummarize {
			t.Errorf("Classify(%q): expected explicit summarize, got %s", text, dec.Kind)
			continue
		}
		if dec.URL != "https://example.com/a" {
			t.Errorf("Classify(%q): unexpected URL %s", text, dec.URL)
		}
	}
}

func TestClassify_GroupTwoStepTrigger(t *testing.T) {
	c, _, _ := newTestClassifier(ClassifierConfig{
		AutoSum:    false,
		Group:      true,
		SumTrigger: "总结",
		QATrigger:  "问",
	})

	// Message 1: a member shares a link; no auto_sum, so it pends
	dec := c.Classify(groupMsg("group-1", "alice", "https://example.com/a"))
	if dec.Kind != domain.DecisionIgnore {
		t.Fatalf("Expected ignore for group share without auto_sum, got %s", dec.Kind)
	}

	// Message 2: bare keyword from any member triggers against the pending link
	dec = c.Classify(groupMsg("group-1", "bob", "总结"))
	if dec.Kind != domain.DecisionExplicitSummarize {
		t.Fatalf("Expected explicit summarize, got %s", dec.Kind)
	}
	if dec.URL != "https://example.com/a" {
		t.Errorf("Unexpected URL: %s", dec.URL)
	}

	// Pending link was consumed: bare keyword alone does nothing
	if dec := c.Classify(groupMsg("group-1", "bob", "总结")); dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore after pending link consumed, got %s", dec.Kind)
	}
}

func TestClassify_GroupTwoStepPendingExpires(t *testing.T) {
	cfg := testConfig()
	cfg.AutoSum = false
	c, _, clock := newTestClassifier(cfg)

	c.Classify(groupMsg("group-1", "alice", "https://example.com/a"))
	clock.Advance(15 * time.Minute)

	if dec := c.Classify(groupMsg("group-1", "bob", "总结")); dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore after pending link expired, got %s", dec.Kind)
	}
}

func TestClassify_FollowUpWithinWindow(t *testing.T) {
	c, cache, clock := newTestClassifier(testConfig())
	scope := domain.PrivateScope("user-1")
	cache.PutSummary(scope, "https://example.com/a", "the summary")

	dec := c.Classify(privateMsg("问这篇讲了什么"))
	if dec.Kind != domain.DecisionFollowUp {
		t.Fatalf("Expected follow-up, got %s", dec.Kind)
	}
	if dec.Question != "这篇讲了什么" {
		t.Errorf("Unexpected question: %q", dec.Question)
	}
	if dec.Summary == nil || dec.Summary.Summary != "the summary" {
		t.Errorf("Expected cached summary as context, got %+v", dec.Summary)
	}

	// After the window elapses the same message is ignored
	clock.Advance(15 * time.Minute)
	if dec := c.Classify(privateMsg("问这篇讲了什么")); dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore after summary expired, got %s", dec.Kind)
	}
}

func TestClassify_FollowUpScopeIsolation(t *testing.T) {
	c, cache, _ := newTestClassifier(testConfig())
	cache.PutSummary(domain.GroupScope("group-1", "alice"), "https://example.com/a", "alice summary")

	// Another member of the same group must not see alice's summary
	dec := c.Classify(groupMsg("group-1", "bob", "问这篇讲了什么"))
	if dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore for other member's follow-up, got %s", dec.Kind)
	}

	dec = c.Classify(groupMsg("group-1", "alice", "问这篇讲了什么"))
	if dec.Kind != domain.DecisionFollowUp {
		t.Errorf("Expected follow-up for alice, got %s", dec.Kind)
	}
}

func TestClassify_FollowUpBeatsNewURL(t *testing.T) {
	c, cache, _ := newTestClassifier(testConfig())
	scope := domain.PrivateScope("user-1")
	cache.PutSummary(scope, "https://example.com/a", "the summary")

	// A message that is both a follow-up and carries a URL: follow-up wins
	dec := c.Classify(privateMsg("问这个链接 https://example.com/b 里说了啥"))
	if dec.Kind != domain.DecisionFollowUp {
		t.Errorf("Expected follow-up to win over new URL, got %s", dec.Kind)
	}
}

func TestClassify_BlacklistedURLIsSilentlyIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.WhiteURLList = []string{"https://docs.qq.com"}
	cfg.BlackURLList = []string{"https://docs.qq.com"}
	c, _, _ := newTestClassifier(cfg)

	// Blacklist wins even when the whitelist also matches
	dec := c.Classify(privateMsg("https://docs.qq.com/doc/abc"))
	if dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore for blacklisted URL, got %s", dec.Kind)
	}
}

func TestClassify_BlockedGroupIgnoresEverything(t *testing.T) {
	cfg := testConfig()
	cfg.BlackGroupList = []string{"group-1"}
	c, cache, _ := newTestClassifier(cfg)
	cache.PutSummary(domain.GroupScope("group-1", "alice"), "https://example.com/a", "summary")

	for _, text := range []string{
		"https://example.com/a",
		"总结 https://example.com/a",
		"问这篇讲了什么",
	} {
		if dec := c.Classify(groupMsg("group-1", "alice", text)); dec.Kind != domain.DecisionIgnore {
			t.Errorf("Classify(%q): expected ignore in blocked group, got %s", text, dec.Kind)
		}
	}

	// Other groups are unaffected
	dec := c.Classify(groupMsg("group-2", "alice", "https://example.com/a"))
	if dec.Kind != domain.DecisionAutoSummarize {
		t.Errorf("Expected auto summarize in unblocked group, got %s", dec.Kind)
	}
}

func TestClassify_GroupHandlingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Group = false
	c, _, _ := newTestClassifier(cfg)

	if dec := c.Classify(groupMsg("group-1", "alice", "https://example.com/a")); dec.Kind != domain.DecisionIgnore {
		t.Errorf("Expected ignore with group handling off, got %s", dec.Kind)
	}
	if dec := c.Classify(privateMsg("https://example.com/a")); dec.Kind != domain.DecisionAutoSummarize {
		t.Errorf("Expected private chat unaffected, got %s", dec.Kind)
	}
}

func TestClassify_ShareCardMessage(t *testing.T) {
	c, _, _ := newTestClassifier(testConfig())

	card := `<msg><appmsg><title>一篇文章</title><url>https://example.com/a?x=1&amp;y=2</url></appmsg></msg>`
	dec := c.Classify(privateMsg(card))
	if dec.Kind != domain.DecisionAutoSummarize {
		t.Fatalf("Expected auto summarize for share card, got %s", dec.Kind)
	}
	if dec.URL != "https://example.com/a?x=1&y=2" {
		t.Errorf("Unexpected URL: %s", dec.URL)
	}
}

func TestClassify_MentionPrefixStripped(t *testing.T) {
	c, _, _ := newTestClassifier(testConfig())

	dec := c.Classify(groupMsg("group-1", "alice", "@bot 总结 https://example.com/a"))
	if dec.Kind != domain.DecisionExplicitSummarize {
		t.Errorf("Expected explicit summarize after mention strip, got %s", dec.Kind)
	}
}

func TestClassify_PlainTextIgnored(t *testing.T) {
	c, _, _ := newTestClassifier(testConfig())

	for _, text := range []string{"hello", "今天天气不错", "总结一下今天的会议"} {
		if dec := c.Classify(privateMsg(text)); dec.Kind != domain.DecisionIgnore {
			t.Errorf("Classify(%q): expected ignore, got %s", text, dec.Kind)
		}
	}
}
