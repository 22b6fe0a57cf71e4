package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kng194/kng-rnd/internal/model"
)

// MaterialRepository 材料数据访问接口
type MaterialRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Material, error)
	Upsert(ctx context.Context, material *model.Material) error
}

type materialRepo struct {
	c collection[model.Material]
}

// NewMaterialRepo 创建 MaterialRepository 实例
func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{c: newCollection[model.Material](db, "id", "name", "type", "origin", "stock_status")}
}

func (r *materialRepo) List(ctx context.Context, opts ListOptions) ([]model.Material, error) {
	return r.c.list(ctx, opts)
}

// Upsert 仅供 seed 命令写入样例材料
func (r *materialRepo) Upsert(ctx context.Context, material *model.Material) error {
	return r.c.upsert(ctx, material)
}
