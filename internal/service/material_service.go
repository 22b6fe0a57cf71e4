package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/lifecycle"
	"github.com/kng194/kng-rnd/internal/model"
	"github.com/kng194/kng-rnd/internal/repository"
	"github.com/kng194/kng-rnd/internal/sample"
)

// MaterialService 材料库业务接口（只读）
type MaterialService interface {
	List(ctx context.Context, query string) (*dto.MaterialListResponse, error)
}

type materialService struct {
	repo   *repository.Repository
	loader *collectionLoader[model.Material]
	remote bool
}

// NewMaterialService 创建 MaterialService 实例。
// feature.remote_materials 关闭时始终使用样例数据，不访问存储。
func NewMaterialService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) MaterialService {
	return &materialService{
		repo: repo,
		loader: &collectionLoader[model.Material]{
			name:    model.Material{}.TableName(),
			cache:   newLocalCache(func(m model.Material) string { return m.ID }),
			samples: func() []model.Material { return sample.MustLoad().Materials },
			timeout: cfg.Store.RequestTimeout,
			logger:  logger,
		},
		remote: cfg.Feature.RemoteMaterials,
	}
}

// ────────────────────── List ──────────────────────

func (s *materialService) List(ctx context.Context, query string) (*dto.MaterialListResponse, error) {
	var res loadResult[model.Material]
	if s.remote {
		res = s.loader.load(ctx, func(ctx context.Context) ([]model.Material, error) {
			return s.repo.Material.List(ctx, repository.ListOptions{OrderBy: "name"})
		})
	} else {
		res = s.loader.local()
	}

	filtered := lifecycle.Filter(res.items, query, func(m model.Material) []string {
		return []string{m.Name, m.Type}
	})
	list := make([]dto.MaterialResponse, 0, len(filtered))
	for _, m := range filtered {
		list = append(list, dto.MaterialResponse{
			Material:   m,
			Icon:       lifecycle.MaterialIcon(m.Type),
			StockBadge: lifecycle.StockBadge(m.StockStatus),
		})
	}

	return &dto.MaterialListResponse{
		Source: res.source,
		Notice: res.notice,
		Total:  len(res.items),
		List:   list,
	}, nil
}
