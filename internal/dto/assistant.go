package dto

// ── AI 助手 DTO ──

// AskRequest 提问请求
type AskRequest struct {
	Prompt string `json:"prompt" binding:"max=4000"`
}

// AskResponse 回复；Failed=true 时 Reply 为固定的致歉文本
type AskResponse struct {
	Reply  string `json:"reply"`
	Failed bool   `json:"failed"`
}

// LastReplyResponse 会话最近一条回复，不存在时为空
type LastReplyResponse struct {
	Reply string `json:"reply"`
}
