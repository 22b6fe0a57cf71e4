package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/pkg/llm"
)

// ── AI 助手业务错误 ──

var (
	ErrChatPromptEmpty = errors.New("提问内容不能为空")
	ErrChatBusy        = errors.New("上一条提问仍在处理中")
)

// 助手固定文案
const (
	chatPreamble = "Anda adalah asisten ahli R&D untuk Kriya Nusantara, sebuah perusahaan kerajinan premium Indonesia " +
		"yang fokus pada material alam seperti kayu, bambu, dan rotan. " +
		"Berikan saran teknis, ide desain, atau solusi material untuk pertanyaan berikut: "
	chatFailureReply = "Terjadi kesalahan saat menghubungi asisten AI."
	chatEmptyReply   = "Maaf, saya tidak bisa memberikan jawaban saat ini."
)

// ChatStore 会话状态存储：并发保护 + 最近一条回复
// *redis.Client 实现该接口；Redis 不可用时使用进程内实现
type ChatStore interface {
	AcquireChat(ctx context.Context, session string, ttl time.Duration) (bool, error)
	ReleaseChat(ctx context.Context, session string) error
	SaveReply(ctx context.Context, session, reply string, ttl time.Duration) error
	LastReply(ctx context.Context, session string) (string, bool, error)
}

// ChatService AI 助手业务接口
type ChatService interface {
	Ask(ctx context.Context, session, prompt string) (*dto.AskResponse, error)
	LastReply(ctx context.Context, session string) (*dto.LastReplyResponse, error)
}

type chatService struct {
	completer llm.Completer
	store     ChatStore
	cfg       *config.Config
	logger    *zap.Logger
}

// NewChatService 创建 ChatService 实例；store 为 nil 时使用进程内存储
func NewChatService(cfg *config.Config, completer llm.Completer, store ChatStore, logger *zap.Logger) ChatService {
	if store == nil {
		store = NewMemoryChatStore()
	}
	return &chatService{completer: completer, store: store, cfg: cfg, logger: logger}
}

// ────────────────────── Ask ──────────────────────

// Ask 单轮提问。生成失败不返回错误，而是返回固定致歉文本（Failed=true）。
func (s *chatService) Ask(ctx context.Context, session, prompt string) (*dto.AskResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrChatPromptEmpty
	}

	acquired, err := s.store.AcquireChat(ctx, session, s.cfg.Chat.InflightTTL)
	if err != nil {
		// 存储异常时降级放行
		s.logger.Warn("获取会话锁失败", zap.String("session", session), zap.Error(err))
		acquired = true
	}
	if !acquired {
		return nil, ErrChatBusy
	}
	defer func() {
		if err := s.store.ReleaseChat(context.WithoutCancel(ctx), session); err != nil {
			s.logger.Warn("释放会话锁失败", zap.String("session", session), zap.Error(err))
		}
	}()

	resp := &dto.AskResponse{}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.LLM.RequestTimeout)
	reply, err := s.completer.Generate(genCtx, chatPreamble+prompt)
	cancel()
	switch {
	case err != nil:
		s.logger.Error("调用文本生成接口失败", zap.String("session", session), zap.Error(err))
		resp.Reply = chatFailureReply
		resp.Failed = true
	case strings.TrimSpace(reply) == "":
		resp.Reply = chatEmptyReply
	default:
		resp.Reply = reply
	}

	if err := s.store.SaveReply(context.WithoutCancel(ctx), session, resp.Reply, s.cfg.Chat.ReplyTTL); err != nil {
		s.logger.Warn("保存最近回复失败", zap.String("session", session), zap.Error(err))
	}

	return resp, nil
}

// ────────────────────── LastReply ──────────────────────

func (s *chatService) LastReply(ctx context.Context, session string) (*dto.LastReplyResponse, error) {
	reply, _, err := s.store.LastReply(ctx, session)
	if err != nil {
		s.logger.Warn("读取最近回复失败", zap.String("session", session), zap.Error(err))
		return &dto.LastReplyResponse{}, nil
	}
	return &dto.LastReplyResponse{Reply: reply}, nil
}

// ── 进程内会话存储 ──

// MemoryChatStore Redis 不可用时的进程内实现；回复不过期
type MemoryChatStore struct {
	mu       sync.Mutex
	inflight map[string]time.Time
	replies  map[string]string
}

// NewMemoryChatStore 创建进程内会话存储
func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{
		inflight: make(map[string]time.Time),
		replies:  make(map[string]string),
	}
}

func (m *MemoryChatStore) AcquireChat(_ context.Context, session string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.inflight[session]; ok && time.Now().Before(exp) {
		return false, nil
	}
	m.inflight[session] = time.Now().Add(ttl)
	return true, nil
}

func (m *MemoryChatStore) ReleaseChat(_ context.Context, session string) error {
	m.mu.Lock()
	delete(m.inflight, session)
	m.mu.Unlock()
	return nil
}

func (m *MemoryChatStore) SaveReply(_ context.Context, session, reply string, _ time.Duration) error {
	m.mu.Lock()
	m.replies[session] = reply
	m.mu.Unlock()
	return nil
}

func (m *MemoryChatStore) LastReply(_ context.Context, session string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reply, ok := m.replies[session]
	return reply, ok, nil
}
