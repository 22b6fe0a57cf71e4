package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/kng194/kng-rnd/config"
)

// Completer 文本生成接口
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured 未配置 API Key
var ErrNotConfigured = errors.New("llm: 未配置 api_key")

// GeminiClient Gemini generateContent 客户端
// 单次请求，不重试、不流式
type GeminiClient struct {
	client fastshot.ClientHttpMethods
	model  string
	apiKey string
}

// NewGeminiClient 根据配置创建客户端
func NewGeminiClient(cfg *config.LLMConfig) *GeminiClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := fastshot.NewClient(strings.TrimRight(cfg.BaseURL, "/")).
		Config().SetTimeout(timeout).
		Header().Add("Content-Type", "application/json")
	if cfg.APIKey != "" {
		c = c.Header().Add("x-goog-api-key", cfg.APIKey)
	}

	return &GeminiClient{
		client: c.Build(),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

// ── 请求/响应结构 ──

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// text 拼接第一个候选的全部文本片段
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Generate 发送单轮提示词，返回生成文本；候选为空时返回 ""
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	resp, err := g.client.
		POST(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model)).
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Body().AsJSON(req).
		Send()
	if err != nil {
		return "", fmt.Errorf("llm: 请求失败: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, _ := resp.Body().AsString()
		return "", fmt.Errorf("llm: 接口返回错误: %s", strings.TrimSpace(msg))
	}

	var out generateResponse
	if err := resp.Body().AsJSON(&out); err != nil {
		return "", fmt.Errorf("llm: 解析响应失败: %w", err)
	}

	return out.text(), nil
}
