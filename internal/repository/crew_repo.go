package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kng194/kng-rnd/internal/model"
)

// CrewRepository 成员数据访问接口
type CrewRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Crew, error)
	GetByID(ctx context.Context, id string) (*model.Crew, error)
	Upsert(ctx context.Context, crew *model.Crew) error
	Delete(ctx context.Context, id string) error
}

type crewRepo struct {
	c collection[model.Crew]
}

// NewCrewRepo 创建 CrewRepository 实例
func NewCrewRepo(db *gorm.DB) CrewRepository {
	return &crewRepo{c: newCollection[model.Crew](db, "id", "name", "position", "join_date", "birth_date")}
}

func (r *crewRepo) List(ctx context.Context, opts ListOptions) ([]model.Crew, error) {
	return r.c.list(ctx, opts)
}

func (r *crewRepo) GetByID(ctx context.Context, id string) (*model.Crew, error) {
	return r.c.getByID(ctx, id)
}

func (r *crewRepo) Upsert(ctx context.Context, crew *model.Crew) error {
	return r.c.upsert(ctx, crew)
}

func (r *crewRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}
