package dto

import (
	"github.com/kng194/kng-rnd/internal/lifecycle"
	"github.com/kng194/kng-rnd/internal/model"
	"github.com/kng194/kng-rnd/internal/sample"
)

// ── 项目模块 DTO ──

// CreateProjectRequest 新建项目请求
type CreateProjectRequest struct {
	Title        string `json:"title"         binding:"max=200"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Category     string `json:"category"      binding:"max=100"`
	Designer     string `json:"designer"      binding:"max=100"`
	StartDate    string `json:"start_date"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// UpdateProjectStatusRequest 更新项目阶段请求
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreatePrototypeLogRequest 追加原型日志请求
type CreatePrototypeLogRequest struct {
	Date     string `json:"date"`
	Version  string `json:"version"   binding:"max=50"`
	Notes    string `json:"notes"`
	ImageURL string `json:"image_url"`
}

// ProjectDetailQuery 项目详情查询参数
type ProjectDetailQuery struct {
	Tab string `form:"tab"`
}

// ProjectResponse 项目信息（含状态徽标与进度）
type ProjectResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       model.ProjectStatus  `json:"status"`
	Category     string               `json:"category"`
	Designer     string               `json:"designer"`
	StartDate    string               `json:"start_date"`
	UpdatedAt    string               `json:"updated_at"`
	ThumbnailURL string               `json:"thumbnail_url,omitempty"`
	Badge        lifecycle.BadgeStyle `json:"badge"`
	Progress     float64              `json:"progress"`
}

// DashboardStats 首页统计卡片
type DashboardStats struct {
	Total            int `json:"total"`
	Prototyping      int `json:"prototyping"`
	MaterialResearch int `json:"material_research"`
	Final            int `json:"final"`
}

// DashboardResponse 首页数据
type DashboardResponse struct {
	Source Source            `json:"source"`
	Notice *Notice           `json:"notice,omitempty"`
	Stats  DashboardStats    `json:"stats"`
	Total  int               `json:"total"`
	List   []ProjectResponse `json:"list"`
}

// ProjectDetailResponse 项目详情；按 ActiveTab 填充对应标签内容
type ProjectDetailResponse struct {
	Project   ProjectResponse  `json:"project"`
	Stages    []lifecycle.Step `json:"stages"`
	ActiveTab string           `json:"active_tab"`

	// overview
	Overview *sample.Overview `json:"overview,omitempty"`

	// logs
	Logs       []model.PrototypeLog `json:"logs,omitempty"`
	LogsSource Source               `json:"logs_source,omitempty"`
	CanAddLog  bool                 `json:"can_add_log"`
	Notice     *Notice              `json:"notice,omitempty"`

	// discussion
	Discussion      []sample.DiscussionMessage `json:"discussion,omitempty"`
	ComposerEnabled bool                       `json:"composer_enabled"`
}

// ProjectWriteResponse 项目写操作结果
type ProjectWriteResponse struct {
	Project   ProjectResponse `json:"project"`
	Persisted bool            `json:"persisted"`
	Notice    *Notice         `json:"notice,omitempty"`
}

// PrototypeLogWriteResponse 追加日志结果
type PrototypeLogWriteResponse struct {
	Log       model.PrototypeLog `json:"log"`
	Persisted bool               `json:"persisted"`
	Notice    *Notice            `json:"notice,omitempty"`
}
