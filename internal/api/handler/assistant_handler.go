package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/service"
	"github.com/kng194/kng-rnd/pkg/response"
)

// sessionHeader 前端每个浏览器标签页生成的会话标识
const sessionHeader = "X-Chat-Session"

// AssistantHandler AI 助手 HTTP 处理器
type AssistantHandler struct {
	chatSvc service.ChatService
}

// NewAssistantHandler 创建 AssistantHandler
func NewAssistantHandler(chatSvc service.ChatService) *AssistantHandler {
	return &AssistantHandler{chatSvc: chatSvc}
}

// Ask 单轮提问
// POST /api/v1/assistant/ask
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.chatSvc.Ask(c.Request.Context(), chatSession(c), req.Prompt)
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, result)
}

// Last 当前会话的最近一条回复
// GET /api/v1/assistant/last
func (h *AssistantHandler) Last(c *gin.Context) {
	result, err := h.chatSvc.LastReply(c.Request.Context(), chatSession(c))
	if err != nil {
		h.handleChatError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AssistantHandler) handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChatPromptEmpty):
		response.BadRequest(c, 23001, "Pertanyaan tidak boleh kosong")
	case errors.Is(err, service.ErrChatBusy):
		response.Conflict(c, 23002, "Pertanyaan sebelumnya masih diproses")
	default:
		response.InternalError(c)
	}
}

func chatSession(c *gin.Context) string {
	if s := c.GetHeader(sessionHeader); s != "" && len(s) <= 64 {
		return s
	}
	return c.ClientIP()
}
