package model

// PrototypeLog 原型迭代日志表 对应 prototype_logs（只追加）
type PrototypeLog struct {
	ID        string `gorm:"type:varchar(64);primaryKey" json:"id"         yaml:"id"`
	ProjectID string `gorm:"type:varchar(64);index"      json:"project_id" yaml:"project_id"`
	Date      Date   `gorm:"type:date"                   json:"date"       yaml:"date"`
	Version   string `gorm:"type:varchar(50)"            json:"version"    yaml:"version"`
	Notes     string `gorm:"type:text"                   json:"notes"      yaml:"notes"`
	ImageURL  string `gorm:"type:text"                   json:"image_url,omitempty" yaml:"image_url"`
}

// TableName 指定表名
func (PrototypeLog) TableName() string { return "prototype_logs" }
