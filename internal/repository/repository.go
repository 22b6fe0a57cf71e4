package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/kng194/kng-rnd/pkg/errors"
)

// Repository 所有 Repository 的聚合入口（即"远程存储客户端"）
type Repository struct {
	Project      ProjectRepository
	Material     MaterialRepository
	Crew         CrewRepository
	PrototypeLog PrototypeLogRepository
}

// NewRepository 创建基于 GORM 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Project:      NewProjectRepo(db),
		Material:     NewMaterialRepo(db),
		Crew:         NewCrewRepo(db),
		PrototypeLog: NewPrototypeLogRepo(db),
	}
}

// ListOptions 列表查询参数：排序字段 + 等值过滤
type ListOptions struct {
	OrderBy string
	Desc    bool
	Filters map[string]interface{}
}

// collection 单个集合的通用 GORM 实现，按列白名单约束排序/过滤字段
type collection[T any] struct {
	db      *gorm.DB
	columns map[string]bool
}

func newCollection[T any](db *gorm.DB, columns ...string) collection[T] {
	cols := make(map[string]bool, len(columns))
	for _, c := range columns {
		cols[c] = true
	}
	return collection[T]{db: db, columns: cols}
}

func (c collection[T]) list(ctx context.Context, opts ListOptions) ([]T, error) {
	db := c.db.WithContext(ctx)

	for col, val := range opts.Filters {
		if !c.columns[col] {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidOrder, col)
		}
		db = db.Where(clause.Eq{Column: clause.Column{Name: col}, Value: val})
	}

	if opts.OrderBy != "" {
		if !c.columns[opts.OrderBy] {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidOrder, opts.OrderBy)
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.OrderBy}, Desc: opts.Desc})
	}

	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Classify(err)
	}
	return rows, nil
}

func (c collection[T]) getByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := c.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, pkgerrors.Classify(err)
	}
	return &row, nil
}

// upsert INSERT ... ON CONFLICT (id) DO UPDATE
func (c collection[T]) upsert(ctx context.Context, row *T) error {
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	return pkgerrors.Classify(err)
}

func (c collection[T]) create(ctx context.Context, row *T) error {
	return pkgerrors.Classify(c.db.WithContext(ctx).Create(row).Error)
}

// delete 物理删除；id 不存在时不视为错误
func (c collection[T]) delete(ctx context.Context, id string) error {
	var zero T
	err := c.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&zero).Error
	return pkgerrors.Classify(err)
}
