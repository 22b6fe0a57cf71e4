package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/lifecycle"
	"github.com/kng194/kng-rnd/internal/model"
	"github.com/kng194/kng-rnd/internal/repository"
	"github.com/kng194/kng-rnd/internal/sample"
)

// ── 成员模块业务错误 ──

var (
	ErrCrewNotFound         = errors.New("成员不存在")
	ErrCrewInvalid          = errors.New("成员信息不完整或格式错误")
	ErrConfirmationRequired = errors.New("删除操作需要确认")
)

// 新建表单默认出生日期
var defaultBirthDate = model.MustDate("1995-01-01")

// CrewService 成员业务接口
type CrewService interface {
	List(ctx context.Context, query string) (*dto.CrewListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CrewResponse, error)
	FormDefaults() *dto.CrewFormDefaults
	Save(ctx context.Context, req *dto.SaveCrewRequest) (*dto.CrewSaveResponse, error)
	Delete(ctx context.Context, id string) (*dto.CrewDeleteResponse, error)
}

type crewService struct {
	repo   *repository.Repository
	loader *collectionLoader[model.Crew]
	logger *zap.Logger
	now    func() time.Time
}

// NewCrewService 创建 CrewService 实例
func NewCrewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CrewService {
	return &crewService{
		repo: repo,
		loader: &collectionLoader[model.Crew]{
			name:    model.Crew{}.TableName(),
			cache:   newLocalCache(func(c model.Crew) string { return c.ID }),
			samples: func() []model.Crew { return sample.MustLoad().Crews },
			timeout: cfg.Store.RequestTimeout,
			logger:  logger,
		},
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── List ──────────────────────

func (s *crewService) List(ctx context.Context, query string) (*dto.CrewListResponse, error) {
	res := s.refresh(ctx)

	filtered := lifecycle.Filter(res.items, query, crewSearchFields)
	list := make([]dto.CrewResponse, 0, len(filtered))
	for i := range filtered {
		list = append(list, s.toCrewResponse(&filtered[i]))
	}

	return &dto.CrewListResponse{
		Source: res.source,
		Notice: res.notice,
		Total:  len(res.items),
		List:   list,
	}, nil
}

// refresh 按姓名排序拉取全部成员
func (s *crewService) refresh(ctx context.Context) loadResult[model.Crew] {
	return s.loader.load(ctx, func(ctx context.Context) ([]model.Crew, error) {
		return s.repo.Crew.List(ctx, repository.ListOptions{OrderBy: "name"})
	})
}

// ────────────────────── GetByID ──────────────────────

// GetByID 先查远程，失败或不存在时再查本地缓存（可能是仅本地保存的成员）
func (s *crewService) GetByID(ctx context.Context, id string) (*dto.CrewResponse, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.loader.timeout)
	crew, err := s.repo.Crew.GetByID(fetchCtx, id)
	cancel()
	if err == nil {
		resp := s.toCrewResponse(crew)
		return &resp, nil
	}

	s.loader.cache.seed(s.loader.samples())
	if cached, ok := s.loader.cache.find(id); ok {
		resp := s.toCrewResponse(&cached)
		return &resp, nil
	}

	s.logger.Debug("成员不存在", zap.String("id", id), zap.Error(err))
	return nil, ErrCrewNotFound
}

// ────────────────────── FormDefaults ──────────────────────

func (s *crewService) FormDefaults() *dto.CrewFormDefaults {
	positions := make([]string, 0, len(model.Positions))
	for _, p := range model.Positions {
		positions = append(positions, string(p))
	}
	return &dto.CrewFormDefaults{
		JoinDate:  model.NewDate(s.now()).String(),
		BirthDate: defaultBirthDate.String(),
		Position:  string(model.PositionProductDesigner),
		Positions: positions,
	}
}

// ────────────────────── Save ──────────────────────

// Save 新建或编辑成员。
// 校验失败时不访问存储；远程写入失败时退化为本地缓存修改（Persisted=false）。
func (s *crewService) Save(ctx context.Context, req *dto.SaveCrewRequest) (*dto.CrewSaveResponse, error) {
	crew, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if crew.ID == "" {
		crew.ID = uuid.NewString()
	}

	persisted, notice := s.loader.write(ctx, "upsert",
		func(ctx context.Context) error { return s.repo.Crew.Upsert(ctx, crew) },
		func(c *localCache[model.Crew]) { c.upsert(*crew) },
	)
	if persisted {
		s.refresh(ctx)
	}

	return &dto.CrewSaveResponse{
		Crew:      s.toCrewResponse(crew),
		Persisted: persisted,
		Notice:    notice,
	}, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除成员；远程失败时仅从本地缓存移除，不存在的 id 视为成功
func (s *crewService) Delete(ctx context.Context, id string) (*dto.CrewDeleteResponse, error) {
	persisted, notice := s.loader.write(ctx, "delete",
		func(ctx context.Context) error { return s.repo.Crew.Delete(ctx, id) },
		func(c *localCache[model.Crew]) { c.remove(id) },
	)
	if persisted {
		s.refresh(ctx)
	}

	return &dto.CrewDeleteResponse{ID: id, Persisted: persisted, Notice: notice}, nil
}

// ── 内部辅助方法 ──

func crewSearchFields(c model.Crew) []string {
	return []string{c.Name, string(c.Position)}
}

func (s *crewService) validate(req *dto.SaveCrewRequest) (*model.Crew, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama wajib diisi", ErrCrewInvalid)
	}

	position := model.Position(req.Position)
	if !position.Valid() {
		return nil, fmt.Errorf("%w: posisi tidak dikenal", ErrCrewInvalid)
	}

	if strings.TrimSpace(req.JoinDate) == "" {
		return nil, fmt.Errorf("%w: tanggal bergabung wajib diisi", ErrCrewInvalid)
	}
	joinDate, err := model.ParseDate(req.JoinDate)
	if err != nil {
		return nil, fmt.Errorf("%w: tanggal bergabung tidak valid", ErrCrewInvalid)
	}

	var birthDate model.Date
	if req.BirthDate != "" {
		birthDate, err = model.ParseDate(req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: tanggal lahir tidak valid", ErrCrewInvalid)
		}
	}

	return &model.Crew{
		ID:        strings.TrimSpace(req.ID),
		Name:      name,
		PhotoURL:  req.PhotoURL,
		Phone:     strings.TrimSpace(req.Phone),
		BirthDate: birthDate,
		JoinDate:  joinDate,
		Position:  position,
	}, nil
}

func (s *crewService) toCrewResponse(c *model.Crew) dto.CrewResponse {
	today := s.now()
	tier := lifecycle.SeniorityTier(c.JoinDate.Time, today)
	years := lifecycle.YearsBetween(c.JoinDate.Time, today)
	if years < 0 {
		years = 0
	}
	return dto.CrewResponse{
		ID:           c.ID,
		Name:         c.Name,
		PhotoURL:     c.PhotoURL,
		Phone:        c.Phone,
		BirthDate:    c.BirthDate.String(),
		JoinDate:     c.JoinDate.String(),
		Position:     string(c.Position),
		YearsService: years,
		Tier:         tier,
		TierBadge:    lifecycle.TierBadge(tier),
	}
}
