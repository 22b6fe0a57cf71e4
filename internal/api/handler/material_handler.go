package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/service"
	"github.com/kng194/kng-rnd/pkg/response"
)

// MaterialHandler 材料库 HTTP 处理器
type MaterialHandler struct {
	materialSvc service.MaterialService
}

// NewMaterialHandler 创建 MaterialHandler
func NewMaterialHandler(materialSvc service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialSvc: materialSvc}
}

// List 材料列表
// GET /api/v1/materials?q=
func (h *MaterialHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.materialSvc.List(c.Request.Context(), q.Q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
