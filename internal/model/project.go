package model

// Project 研发项目表 对应 projects
type Project struct {
	ID           string        `gorm:"type:varchar(64);primaryKey" json:"id"          yaml:"id"`
	Title        string        `gorm:"type:varchar(200);not null"  json:"title"       yaml:"title"`
	Description  string        `gorm:"type:text"                   json:"description" yaml:"description"`
	Status       ProjectStatus `gorm:"type:varchar(20);not null"   json:"status"      yaml:"status"`
	Category     string        `gorm:"type:varchar(100)"           json:"category"    yaml:"category"`
	Designer     string        `gorm:"type:varchar(100)"           json:"designer"    yaml:"designer"`
	StartDate    Date          `gorm:"type:date"                   json:"start_date"  yaml:"start_date"`
	UpdatedAt    Date          `gorm:"type:date;autoUpdateTime:false" json:"updated_at" yaml:"updated_at"`
	ThumbnailURL string        `gorm:"type:text"                   json:"thumbnail_url,omitempty" yaml:"thumbnail_url"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }
