package dto

import "github.com/kng194/kng-rnd/internal/lifecycle"

// ── 成员模块 DTO ──

// SaveCrewRequest 新建/编辑成员请求（日期格式 YYYY-MM-DD）
// 字段语义校验由 Service 层完成，校验失败时不访问存储
type SaveCrewRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"       binding:"max=100"`
	PhotoURL  string `json:"photo_url"`
	Phone     string `json:"phone"      binding:"max=30"`
	BirthDate string `json:"birth_date"`
	JoinDate  string `json:"join_date"`
	Position  string `json:"position"`
}

// CrewResponse 成员信息（含推导出的资历等级）
type CrewResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	PhotoURL     string               `json:"photo_url,omitempty"`
	Phone        string               `json:"phone"`
	BirthDate    string               `json:"birth_date"`
	JoinDate     string               `json:"join_date"`
	Position     string               `json:"position"`
	YearsService int                  `json:"years_of_service"`
	Tier         lifecycle.Tier       `json:"tier"`
	TierBadge    lifecycle.BadgeStyle `json:"tier_badge"`
}

// CrewListResponse 成员列表
type CrewListResponse struct {
	Source Source         `json:"source"`
	Notice *Notice        `json:"notice,omitempty"`
	Total  int            `json:"total"`
	List   []CrewResponse `json:"list"`
}

// CrewSaveResponse 保存结果；Persisted=false 表示仅写入了本地缓存
type CrewSaveResponse struct {
	Crew      CrewResponse `json:"crew"`
	Persisted bool         `json:"persisted"`
	Notice    *Notice      `json:"notice,omitempty"`
}

// CrewDeleteResponse 删除结果
type CrewDeleteResponse struct {
	ID        string  `json:"id"`
	Persisted bool    `json:"persisted"`
	Notice    *Notice `json:"notice,omitempty"`
}

// CrewFormDefaults 新建表单默认值
type CrewFormDefaults struct {
	JoinDate  string   `json:"join_date"`
	BirthDate string   `json:"birth_date"`
	Position  string   `json:"position"`
	Positions []string `json:"positions"`
}

// PhotoResponse 照片上传结果
type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}
