package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BenedictKing/jina-sum/feishu"
	"github.com/BenedictKing/jina-sum/internal/biz/domain"
	"github.com/BenedictKing/jina-sum/internal/service"
)

// FeishuServer connects the Feishu host runtime to the summary service
type FeishuServer struct {
	feishuClient *feishu.Client
	summarySvc   *service.SummaryService
	helpText     string

	// Message deduplication cache
	seenMsgsMu sync.RWMutex
	seenMsgs   map[string]time.Time // msgID -> timestamp
}

// NewFeishuServer creates a new Feishu server
func NewFeishuServer(
	feishuClient *feishu.Client,
	summarySvc *service.SummaryService,
	helpText string,
) *FeishuServer {
	s := &FeishuServer{
		feishuClient: feishuClient,
		summarySvc:   summarySvc,
		helpText:     helpText,
		seenMsgs:     make(map[string]time.Time),
	}

	// Progress notices go straight back to the chat
	summarySvc.SetNoticeCallback(func(chatID, text string) {
		if err := feishuClient.SendText(chatID, text); err != nil {
			fmt.Printf("[Server] Failed to send notice: %v\n", err)
		}
	})

	return s
}

// Start starts the server
func (s *FeishuServer) Start() error {
	s.feishuClient.OnMessage(s.handleMessage)
	return s.feishuClient.Start()
}

// Stop stops the server
func (s *FeishuServer) Stop() {
	s.feishuClient.Stop()
}

// handleMessage handles one Feishu message
func (s *FeishuServer) handleMessage(msg *feishu.Message) {
	// Message deduplication: the host may redeliver
	if s.isMessageSeen(msg.MsgID) {
		fmt.Printf("[Server] Duplicate message ignored: %s\n", msg.MsgID)
		return
	}
	s.markMessageSeen(msg.MsgID)

	if isHelpRequest(msg.Content) {
		if err := s.feishuClient.SendText(msg.ChatID, s.helpText); err != nil {
			fmt.Printf("[Server] Failed to send help: %v\n", err)
		}
		return
	}

	chatType := domain.ChatTypeP2P
	if msg.ChatType == "group" {
		chatType = domain.ChatTypeGroup
	}

	req := &service.MessageRequest{
		ChatID:   msg.ChatID,
		Content:  msg.Content,
		ChatType: chatType,
		SenderID: msg.SenderID,
	}

	// Handle in its own goroutine: fetch+summarize is a slow network round
	// trip and other chats must not wait behind it
	go func() {
		reply := s.summarySvc.HandleMessage(context.Background(), req)
		if reply == "" {
			return
		}
		if err := s.feishuClient.SendText(msg.ChatID, reply); err != nil {
			fmt.Printf("[Server] Failed to send reply: %v\n", err)
		}
	}()
}

func isHelpRequest(text string) bool {
	text = strings.TrimSpace(text)
	return text == "总结帮助" || strings.EqualFold(text, "summarize help")
}

// isMessageSeen checks if a message has been processed
func (s *FeishuServer) isMessageSeen(msgID string) bool {
	s.seenMsgsMu.RLock()
	defer s.seenMsgsMu.RUnlock()
	_, exists := s.seenMsgs[msgID]
	return exists
}

// markMessageSeen marks a message as processed
func (s *FeishuServer) markMessageSeen(msgID string) {
	s.seenMsgsMu.Lock()
	defer s.seenMsgsMu.Unlock()
	s.seenMsgs[msgID] = time.Now()

	// Clean up expired records to prevent memory growth
	cutoff := time.Now().Add(-5 * time.Minute)
	for id, ts := range s.seenMsgs {
		if ts.Before(cutoff) {
			delete(s.seenMsgs, id)
		}
	}
}
