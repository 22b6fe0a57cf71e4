package model

// ── 项目阶段 ──

// ProjectStatus 项目生命周期状态
type ProjectStatus string

const (
	StatusConcept     ProjectStatus = "Concept"
	StatusPrototyping ProjectStatus = "Prototyping"
	StatusTesting     ProjectStatus = "Testing"
	StatusFinal       ProjectStatus = "Final"
	StatusArchived    ProjectStatus = "Archived"
)

// ProjectStatuses 全部合法状态（按推进顺序）
var ProjectStatuses = []ProjectStatus{StatusConcept, StatusPrototyping, StatusTesting, StatusFinal, StatusArchived}

// Valid 是否为枚举内的状态
func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ── 库存状态 ──

// StockStatus 材料库存状态
type StockStatus string

const (
	StockAvailable  StockStatus = "Available"
	StockLow        StockStatus = "Low"
	StockOutOfStock StockStatus = "Out of Stock"
)

// Valid 是否为枚举内的库存状态
func (s StockStatus) Valid() bool {
	return s == StockAvailable || s == StockLow || s == StockOutOfStock
}

// ── 岗位 ──

// Position 研发团队岗位
type Position string

const (
	PositionProductDesigner Position = "Designer Produk"
	PositionInterior        Position = "Interior"
	PositionMotif           Position = "Motif"
	PositionDrafter         Position = "Drafter"
)

// Positions 表单下拉可选岗位
var Positions = []Position{PositionProductDesigner, PositionInterior, PositionMotif, PositionDrafter}

// Valid 是否为枚举内的岗位
func (p Position) Valid() bool {
	for _, v := range Positions {
		if p == v {
			return true
		}
	}
	return false
}
