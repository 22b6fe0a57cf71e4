package repository

import (
	"context"

	"github.com/kng194/kng-rnd/internal/model"
	pkgerrors "github.com/kng194/kng-rnd/pkg/errors"
)

// NewOfflineRepository 数据库不可达时使用的 Repository 聚合。
// 所有调用都返回 ErrStoreUnavailable，由 Service 层走本地回退逻辑。
func NewOfflineRepository() *Repository {
	return &Repository{
		Project:      offlineProject{},
		Material:     offlineMaterial{},
		Crew:         offlineCrew{},
		PrototypeLog: offlineLog{},
	}
}

var (
	_ ProjectRepository      = offlineProject{}
	_ MaterialRepository     = offlineMaterial{}
	_ CrewRepository         = offlineCrew{}
	_ PrototypeLogRepository = offlineLog{}
)

type offlineProject struct{}

func (offlineProject) List(context.Context, ListOptions) ([]model.Project, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineProject) GetByID(context.Context, string) (*model.Project, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineProject) Upsert(context.Context, *model.Project) error {
	return pkgerrors.ErrStoreUnavailable
}

type offlineMaterial struct{}

func (offlineMaterial) List(context.Context, ListOptions) ([]model.Material, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineMaterial) Upsert(context.Context, *model.Material) error {
	return pkgerrors.ErrStoreUnavailable
}

type offlineLog struct{}

func (offlineLog) ListByProject(context.Context, string) ([]model.PrototypeLog, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineLog) Create(context.Context, *model.PrototypeLog) error {
	return pkgerrors.ErrStoreUnavailable
}

type offlineCrew struct{}

func (offlineCrew) List(context.Context, ListOptions) ([]model.Crew, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineCrew) GetByID(context.Context, string) (*model.Crew, error) {
	return nil, pkgerrors.ErrStoreUnavailable
}

func (offlineCrew) Upsert(context.Context, *model.Crew) error { return pkgerrors.ErrStoreUnavailable }

func (offlineCrew) Delete(context.Context, string) error { return pkgerrors.ErrStoreUnavailable }
