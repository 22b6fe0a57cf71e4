package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kng194/kng-rnd/internal/model"
)

// PrototypeLogRepository 原型日志数据访问接口（只追加）
type PrototypeLogRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]model.PrototypeLog, error)
	Create(ctx context.Context, log *model.PrototypeLog) error
}

type prototypeLogRepo struct {
	c collection[model.PrototypeLog]
}

// NewPrototypeLogRepo 创建 PrototypeLogRepository 实例
func NewPrototypeLogRepo(db *gorm.DB) PrototypeLogRepository {
	return &prototypeLogRepo{c: newCollection[model.PrototypeLog](db, "id", "project_id", "date", "version")}
}

// ListByProject 按日期倒序列出某项目的日志
func (r *prototypeLogRepo) ListByProject(ctx context.Context, projectID string) ([]model.PrototypeLog, error) {
	return r.c.list(ctx, ListOptions{
		OrderBy: "date",
		Desc:    true,
		Filters: map[string]interface{}{"project_id": projectID},
	})
}

func (r *prototypeLogRepo) Create(ctx context.Context, log *model.PrototypeLog) error {
	return r.c.create(ctx, log)
}
