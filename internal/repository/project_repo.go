package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kng194/kng-rnd/internal/model"
)

// ProjectRepository 项目数据访问接口（项目不做物理删除）
type ProjectRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Upsert(ctx context.Context, project *model.Project) error
}

type projectRepo struct {
	c collection[model.Project]
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{c: newCollection[model.Project](db, "id", "title", "status", "category", "designer", "start_date", "updated_at")}
}

func (r *projectRepo) List(ctx context.Context, opts ListOptions) ([]model.Project, error) {
	return r.c.list(ctx, opts)
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return r.c.getByID(ctx, id)
}

func (r *projectRepo) Upsert(ctx context.Context, project *model.Project) error {
	return r.c.upsert(ctx, project)
}
