package dto

import (
	"github.com/kng194/kng-rnd/internal/lifecycle"
	"github.com/kng194/kng-rnd/internal/model"
)

// MaterialResponse 材料信息（含图标与库存徽标）
type MaterialResponse struct {
	model.Material
	Icon       lifecycle.IconKind   `json:"icon"`
	StockBadge lifecycle.BadgeStyle `json:"stock_badge"`
}

// MaterialListResponse 材料库列表
type MaterialListResponse struct {
	Source Source             `json:"source"`
	Notice *Notice            `json:"notice,omitempty"`
	Total  int                `json:"total"`
	List   []MaterialResponse `json:"list"`
}
