package lifecycle

import "github.com/kng194/kng-rnd/internal/model"

// ── 图标与徽章映射 ──
//
// 均为枚举域上的全函数，未识别的值落到显式兜底项，而不是什么都不渲染。

// IconKind 材料类型图标
type IconKind string

const (
	IconLeaf     IconKind = "leaf"
	IconLayers   IconKind = "layers"
	IconDroplets IconKind = "droplets"
	IconBox      IconKind = "box"
)

// MaterialIcon 材料类型 → 图标
func MaterialIcon(materialType string) IconKind {
	switch materialType {
	case "Wood", "Rattan":
		return IconLeaf
	case "Bamboo":
		return IconLayers
	case "Synthetic":
		return IconDroplets
	default:
		return IconBox
	}
}

// BadgeStyle 徽章配色（与前端调色板约定一致）
type BadgeStyle string

const (
	BadgeBlue    BadgeStyle = "blue"
	BadgeAmber   BadgeStyle = "amber"
	BadgeEmerald BadgeStyle = "emerald"
	BadgePurple  BadgeStyle = "purple"
	BadgeRose    BadgeStyle = "rose"
	BadgeSlate   BadgeStyle = "slate"
)

// StatusBadge 项目状态 → 徽章
func StatusBadge(status model.ProjectStatus) BadgeStyle {
	switch status {
	case model.StatusConcept:
		return BadgeBlue
	case model.StatusPrototyping:
		return BadgeAmber
	case model.StatusTesting:
		return BadgeEmerald
	case model.StatusFinal:
		return BadgePurple
	default:
		return BadgeSlate
	}
}

// StockBadge 库存状态 → 徽章
func StockBadge(status model.StockStatus) BadgeStyle {
	switch status {
	case model.StockAvailable:
		return BadgeEmerald
	case model.StockLow:
		return BadgeAmber
	case model.StockOutOfStock:
		return BadgeRose
	default:
		return BadgeSlate
	}
}

// TierBadge 资历等级 → 徽章
func TierBadge(tier Tier) BadgeStyle {
	switch tier {
	case TierPemula:
		return BadgeBlue
	case TierJunior:
		return BadgeAmber
	case TierSenior:
		return BadgeEmerald
	default:
		return BadgeSlate
	}
}
