package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
	"github.com/BenedictKing/jina-sum/internal/biz/repo"
	"github.com/BenedictKing/jina-sum/internal/biz/usecase"
)

// User-facing failure notices. One short message per error class, no retry.
const (
	noticeFetchFailed  = "抱歉，无法获取文章内容，请稍后重试或直接打开链接查看。"
	noticeEmptyContent = "抱歉，这个链接没有可提取的正文内容。"
	noticeAuthFailed   = "抱歉，模型服务认证失败，请联系管理员检查 API Key。"
	noticeRateLimited  = "抱歉，请求太频繁了，请稍后再试。"
	noticeGenFailed    = "抱歉，生成总结失败，请稍后重试。"
	noticeProcessing   = "🎉正在为您生成总结，请稍候..."
	noticeThinking     = "🤔 正在思考您的问题，请稍候..."
)

// SummaryService sequences classification, fetching, summarization, and
// caching for each incoming message
type SummaryService struct {
	classifier  *usecase.Classifier
	cache       *usecase.SessionCache
	contentRepo repo.ContentRepo
	summaryRepo repo.SummaryRepo
	historyRepo repo.HistoryRepo // optional
	sendNotice  bool

	// Notice callback, invoked before the slow fetch+summarize path
	onNotice func(chatID, text string)
}

// MessageRequest is one inbound message from the host runtime
type MessageRequest struct {
	ChatID   string
	Content  string
	ChatType domain.ChatType
	SenderID string
}

// NewSummaryService creates the orchestrator. historyRepo may be nil.
func NewSummaryService(
	classifier *usecase.Classifier,
	cache *usecase.SessionCache,
	contentRepo repo.ContentRepo,
	summaryRepo repo.SummaryRepo,
	historyRepo repo.HistoryRepo,
	sendNotice bool,
) *SummaryService {
	return &SummaryService{
		classifier:  classifier,
		cache:       cache,
		contentRepo: contentRepo,
		summaryRepo: summaryRepo,
		historyRepo: historyRepo,
		sendNotice:  sendNotice,
	}
}

// SetNoticeCallback sets the progress-notice sender
func (s *SummaryService) SetNoticeCallback(callback func(chatID, text string)) {
	s.onNotice = callback
}

// HandleMessage processes one message and returns the reply text,
// or "" when the message produces no reply
func (s *SummaryService) HandleMessage(ctx context.Context, req *MessageRequest) string {
	msg := &domain.IncomingMessage{
		Text:     req.Content,
		ChatType: req.ChatType,
		SenderID: req.SenderID,
	}
	if req.ChatType == domain.ChatTypeGroup {
		msg.GroupID = req.ChatID
	}

	decision := s.classifier.Classify(msg)
	fmt.Printf("[Service] Decision %s for chat %s\n", decision.Kind, req.ChatID)

	switch decision.Kind {
	case domain.DecisionAutoSummarize, domain.DecisionExplicitSummarize:
		return s.summarize(ctx, req.ChatID, msg.Scope(), decision.URL)
	case domain.DecisionFollowUp:
		return s.answer(ctx, req.ChatID, msg.Scope(), decision)
	default:
		return ""
	}
}

func (s *SummaryService) summarize(ctx context.Context, chatID string, scope domain.ChatScope, url string) string {
	s.notify(chatID, noticeProcessing)

	// Reuse cached content for the same link within the window
	var text string
	if cached := s.cache.GetContent(scope); cached != nil && cached.URL == url {
		text = cached.Text
	} else {
		fetched, err := s.contentRepo.Fetch(ctx, url)
		if err != nil {
			fmt.Printf("[Service] Fetch failed for %s: %v\n", url, err)
			return fetchNotice(err)
		}
		text = fetched
		s.cache.PutContent(scope, url, text)
	}

	summary, err := s.summaryRepo.Summarize(ctx, text)
	if err != nil {
		fmt.Printf("[Service] Summarize failed for %s: %v\n", url, err)
		return genNotice(err)
	}

	s.cache.PutSummary(scope, url, summary)
	s.recordHistory(ctx, scope, url, summary)

	return summary
}

func (s *SummaryService) answer(ctx context.Context, chatID string, scope domain.ChatScope, decision domain.Decision) string {
	s.notify(chatID, noticeThinking)

	// Raw content sharpens answers when it is still cached for the same link
	var content string
	if cached := s.cache.GetContent(scope); cached != nil && cached.URL == decision.Summary.URL {
		content = cached.Text
	}

	reply, err := s.summaryRepo.Answer(ctx, decision.Question, decision.Summary.Summary, content)
	if err != nil {
		fmt.Printf("[Service] Answer failed: %v\n", err)
		return genNotice(err)
	}
	return reply
}

func (s *SummaryService) notify(chatID, text string) {
	if s.sendNotice && s.onNotice != nil {
		s.onNotice(chatID, text)
	}
}

func (s *SummaryService) recordHistory(ctx context.Context, scope domain.ChatScope, url, summary string) {
	if s.historyRepo == nil {
		return
	}
	err := s.historyRepo.Record(ctx, &domain.SummaryRecord{
		ScopeKey: scope.Key(),
		URL:      url,
		Chars:    len([]rune(summary)),
	})
	if err != nil {
		fmt.Printf("[Service] Failed to record history: %v\n", err)
	}
}

func fetchNotice(err error) string {
	if errors.Is(err, domain.ErrEmptyContent) {
		return noticeEmptyContent
	}
	return noticeFetchFailed
}

func genNotice(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailure):
		return noticeAuthFailed
	case errors.Is(err, domain.ErrRateLimited):
		return noticeRateLimited
	default:
		return noticeGenFailed
	}
}

// HelpText describes the bot's triggers for a help command
func HelpText(autoSum bool, sumTrigger, qaTrigger string) string {
	help := "网页内容总结:\n"
	help += fmt.Sprintf("1. 发送「%s 网址」总结指定网页\n", sumTrigger)
	if autoSum {
		help += "2. 直接分享链接会自动总结\n"
	} else {
		help += fmt.Sprintf("2. 群聊中分享链接后，发送「%s」触发总结\n", sumTrigger)
	}
	help += fmt.Sprintf("3. 总结完成后，可发送「%sxxx」追问文章相关问题", qaTrigger)
	return help
}
