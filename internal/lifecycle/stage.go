package lifecycle

import "github.com/kng194/kng-rnd/internal/model"

// StageOrder 详情页进度条使用的五步推进顺序。
// Design 仅为展示阶段，并非 ProjectStatus 枚举值；Archived 不在其中。
var StageOrder = []string{"Concept", "Design", "Prototyping", "Testing", "Final"}

// StagePosition 返回 status 在 order 中的下标。
// 不在 order 中的状态（如 Archived）固定为最后一个阶段；order 为空时返回 0。
func StagePosition(status model.ProjectStatus, order []string) int {
	if len(order) == 0 {
		return 0
	}
	for i, s := range order {
		if s == string(status) {
			return i
		}
	}
	return len(order) - 1
}

// StageFraction 进度条完成比例 index/(len-1)，结果限制在 [0,1]。
func StageFraction(status model.ProjectStatus, order []string) float64 {
	switch len(order) {
	case 0:
		return 0
	case 1:
		return 1
	}
	f := float64(StagePosition(status, order)) / float64(len(order)-1)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Step 进度条上的单个节点
type Step struct {
	Name      string `json:"name"`
	Reached   bool   `json:"reached"`   // i <= 当前下标，节点高亮
	Completed bool   `json:"completed"` // i < 当前下标，显示勾选
}

// StageSteps 生成进度条节点
func StageSteps(status model.ProjectStatus, order []string) []Step {
	idx := StagePosition(status, order)
	steps := make([]Step, len(order))
	for i, name := range order {
		steps[i] = Step{Name: name, Reached: i <= idx, Completed: i < idx}
	}
	return steps
}
