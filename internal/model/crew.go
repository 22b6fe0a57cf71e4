package model

// Crew 研发团队成员表 对应 crews
// 资历等级由 JoinDate 推导，不落库
type Crew struct {
	ID        string   `gorm:"type:varchar(64);primaryKey" json:"id"                  yaml:"id"`
	Name      string   `gorm:"type:varchar(100);not null"  json:"name"                yaml:"name"`
	PhotoURL  string   `gorm:"type:text"                   json:"photo_url,omitempty" yaml:"photo_url"`
	Phone     string   `gorm:"type:varchar(30)"            json:"phone"               yaml:"phone"`
	BirthDate Date     `gorm:"type:date"                   json:"birth_date"          yaml:"birth_date"`
	JoinDate  Date     `gorm:"type:date;not null"          json:"join_date"           yaml:"join_date"`
	Position  Position `gorm:"type:varchar(30);not null"   json:"position"            yaml:"position"`
}

// TableName 指定表名
func (Crew) TableName() string { return "crews" }
