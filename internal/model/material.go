package model

// Material 材料目录表 对应 materials
type Material struct {
	ID          string      `gorm:"type:varchar(64);primaryKey" json:"id"           yaml:"id"`
	Name        string      `gorm:"type:varchar(200);not null"  json:"name"         yaml:"name"`
	Type        string      `gorm:"type:varchar(50)"            json:"type"         yaml:"type"`
	Origin      string      `gorm:"type:varchar(100)"           json:"origin"       yaml:"origin"`
	Properties  StringArray `gorm:"type:text[]"                 json:"properties"   yaml:"properties"`
	StockStatus StockStatus `gorm:"type:varchar(20);not null"   json:"stock_status" yaml:"stock_status"`
	Notes       string      `gorm:"type:text"                   json:"notes"        yaml:"notes"`
}

// TableName 指定表名
func (Material) TableName() string { return "materials" }
