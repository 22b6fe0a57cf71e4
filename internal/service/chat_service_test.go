package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// ── Mock Completer ──

type mockCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	block   chan struct{}
}

func (m *mockCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	block := m.block
	m.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.reply, m.err
}

func (m *mockCompleter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// failingChatStore 模拟 Redis 故障
type failingChatStore struct{}

func (failingChatStore) AcquireChat(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}
func (failingChatStore) ReleaseChat(context.Context, string) error { return errors.New("redis down") }
func (failingChatStore) SaveReply(context.Context, string, string, time.Duration) error {
	return errors.New("redis down")
}
func (failingChatStore) LastReply(context.Context, string) (string, bool, error) {
	return "", false, errors.New("redis down")
}

func setupTestChatService(completer *mockCompleter) ChatService {
	return NewChatService(testConfig(), completer, nil, zap.NewNop())
}

// ── Ask 测试 ──

func TestChatService_Ask_Success(t *testing.T) {
	completer := &mockCompleter{reply: "Gunakan rotan manau untuk rangka."}
	svc := setupTestChatService(completer)

	result, err := svc.Ask(context.Background(), "s1", "Bahan rangka lampu?")
	if err != nil {
		t.Fatalf("Ask 应成功: %v", err)
	}
	if result.Reply != "Gunakan rotan manau untuk rangka." || result.Failed {
		t.Errorf("回复不符合预期: %+v", result)
	}

	prompt := completer.prompts[0]
	if !strings.HasPrefix(prompt, "Anda adalah asisten ahli R&D untuk Kriya Nusantara") {
		t.Errorf("提示词应以固定前言开头: %s", prompt)
	}
	if !strings.HasSuffix(prompt, "pertanyaan berikut: Bahan rangka lampu?") {
		t.Errorf("提示词应以用户输入结尾: %s", prompt)
	}

	last, _ := svc.LastReply(context.Background(), "s1")
	if last.Reply != result.Reply {
		t.Errorf("最近回复应为本次回复，实际 %s", last.Reply)
	}
}

func TestChatService_Ask_BlankPrompt(t *testing.T) {
	completer := &mockCompleter{reply: "x"}
	svc := setupTestChatService(completer)

	_, err := svc.Ask(context.Background(), "s1", "   \n")
	if !errors.Is(err, ErrChatPromptEmpty) {
		t.Errorf("期望 ErrChatPromptEmpty，实际: %v", err)
	}
	if completer.calls() != 0 {
		t.Error("空提问不应调用文本生成接口")
	}
}

func TestChatService_Ask_FailureReturnsApology(t *testing.T) {
	completer := &mockCompleter{err: errors.New("503")}
	svc := setupTestChatService(completer)

	result, err := svc.Ask(context.Background(), "s1", "halo")
	if err != nil {
		t.Fatalf("生成失败时不应返回错误: %v", err)
	}
	if result.Reply != "Terjadi kesalahan saat menghubungi asisten AI." || !result.Failed {
		t.Errorf("期望固定致歉文本，实际 %+v", result)
	}
}

func TestChatService_Ask_EmptyReply(t *testing.T) {
	svc := setupTestChatService(&mockCompleter{reply: ""})

	result, _ := svc.Ask(context.Background(), "s1", "halo")
	if result.Reply != "Maaf, saya tidak bisa memberikan jawaban saat ini." || result.Failed {
		t.Errorf("期望无回答文本，实际 %+v", result)
	}
}

func TestChatService_Ask_BusyWhileInFlight(t *testing.T) {
	completer := &mockCompleter{reply: "ok", block: make(chan struct{})}
	svc := setupTestChatService(completer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Ask(context.Background(), "s1", "pertama")
	}()

	// 等待第一条请求进入生成阶段
	deadline := time.Now().Add(time.Second)
	for completer.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := svc.Ask(context.Background(), "s1", "kedua"); !errors.Is(err, ErrChatBusy) {
		t.Errorf("期望 ErrChatBusy，实际: %v", err)
	}

	close(completer.block)
	<-done

	if _, err := svc.Ask(context.Background(), "s1", "ketiga"); err != nil {
		t.Errorf("请求结束后锁应释放: %v", err)
	}
}

func TestChatService_Ask_SessionsIndependent(t *testing.T) {
	store := NewMemoryChatStore()
	if ok, _ := store.AcquireChat(context.Background(), "s1", time.Minute); !ok {
		t.Fatal("预占会话锁失败")
	}
	svc := NewChatService(testConfig(), &mockCompleter{reply: "ok"}, store, zap.NewNop())

	if _, err := svc.Ask(context.Background(), "s1", "a"); !errors.Is(err, ErrChatBusy) {
		t.Errorf("期望 ErrChatBusy，实际: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "s2", "b"); err != nil {
		t.Errorf("不同会话不应互相阻塞: %v", err)
	}
}

func TestChatService_Ask_ReleasesAfterFailure(t *testing.T) {
	svc := setupTestChatService(&mockCompleter{err: errors.New("boom")})

	_, _ = svc.Ask(context.Background(), "s1", "a")
	if _, err := svc.Ask(context.Background(), "s1", "b"); errors.Is(err, ErrChatBusy) {
		t.Error("失败后锁也应释放")
	}
}

func TestChatService_StoreFailureDegrades(t *testing.T) {
	svc := NewChatService(testConfig(), &mockCompleter{reply: "ok"}, failingChatStore{}, zap.NewNop())

	result, err := svc.Ask(context.Background(), "s1", "halo")
	if err != nil || result.Reply != "ok" {
		t.Errorf("会话存储故障时应降级放行，实际 %+v %v", result, err)
	}

	last, err := svc.LastReply(context.Background(), "s1")
	if err != nil || last.Reply != "" {
		t.Errorf("读取失败时应返回空回复，实际 %+v %v", last, err)
	}
}

func TestChatService_LastReply_Empty(t *testing.T) {
	svc := setupTestChatService(&mockCompleter{})

	last, err := svc.LastReply(context.Background(), "unknown")
	if err != nil || last.Reply != "" {
		t.Errorf("无回复时应为空，实际 %+v %v", last, err)
	}
}
