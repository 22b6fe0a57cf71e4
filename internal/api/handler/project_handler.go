package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/service"
	"github.com/kng194/kng-rnd/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
	exportSvc  service.ExportService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService, exportSvc service.ExportService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, exportSvc: exportSvc}
}

// Dashboard 首页：统计卡片 + 项目列表
// GET /api/v1/dashboard?q=
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.projectSvc.Dashboard(c.Request.Context(), q.Q)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, result)
}

// Detail 项目详情
// GET /api/v1/projects/:id?tab=overview|logs|discussion
func (h *ProjectHandler) Detail(c *gin.Context) {
	var q dto.ProjectDetailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.projectSvc.Detail(c.Request.Context(), c.Param("id"), q.Tab)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 新建项目
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.projectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateStatus 推进/调整项目阶段
// PUT /api/v1/projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.projectSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, result)
}

// AddLog 追加原型日志
// POST /api/v1/projects/:id/logs
func (h *ProjectHandler) AddLog(c *gin.Context) {
	var req dto.CreatePrototypeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Parameter tidak valid")
		return
	}

	result, err := h.projectSvc.AddLog(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, result)
}

// Export 导出项目文档（Excel）
// GET /api/v1/projects/:id/export
func (h *ProjectHandler) Export(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// Calendar 导出项目日历（iCalendar）
// GET /api/v1/projects/:id/calendar.ics
func (h *ProjectHandler) Calendar(c *gin.Context) {
	body, filename, err := h.exportSvc.ProjectCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Attachment(c, contentTypeICS, filename, body)
}

func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 22001, "Proyek tidak ditemukan")
	case errors.Is(err, service.ErrProjectInvalid):
		response.BadRequest(c, 22002, "Data proyek tidak lengkap atau tidak valid")
	case errors.Is(err, service.ErrProjectInvalidTab):
		response.BadRequest(c, 22003, "Tab tidak dikenal")
	case errors.Is(err, service.ErrLogInvalid):
		response.BadRequest(c, 22004, "Data log prototipe tidak lengkap atau tidak valid")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
