package lifecycle

import "time"

// Tier 成员资历等级（由入职日期推导）
type Tier string

const (
	TierPemula Tier = "Pemula"
	TierJunior Tier = "Junior"
	TierSenior Tier = "Senior"
)

// YearsBetween 计算 from 到 to 之间经过的整年数（按日历，而非天数相除）。
// to 早于 from 时结果为负数或 0。
func YearsBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()

	years := ty - fy
	if tm < fm || (tm == fm && td < fd) {
		years--
	}
	return years
}

// SeniorityTier 根据入职日期与当前日期计算资历等级：
// 不满 1 年为 Pemula，1~5 年（含 5）为 Junior，超过 5 年为 Senior。
// 入职日期在未来时按 Pemula 处理。
func SeniorityTier(joinDate, today time.Time) Tier {
	years := YearsBetween(joinDate, today)
	switch {
	case years < 1:
		return TierPemula
	case years <= 5:
		return TierJunior
	default:
		return TierSenior
	}
}
