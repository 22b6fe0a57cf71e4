package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
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
	pkgerrors "github.com/kng194/kng-rnd/pkg/errors"
)

// ── 项目模块业务错误 ──

var (
	ErrProjectNotFound   = errors.New("项目不存在")
	ErrProjectInvalid    = errors.New("项目信息不完整或格式错误")
	ErrProjectInvalidTab = errors.New("未知的详情标签")
	ErrLogInvalid        = errors.New("原型日志信息不完整或格式错误")
)

// 详情页标签
const (
	TabOverview   = "overview"
	TabLogs       = "logs"
	TabDiscussion = "discussion"
)

// ProjectService 项目业务接口
type ProjectService interface {
	Dashboard(ctx context.Context, query string) (*dto.DashboardResponse, error)
	Detail(ctx context.Context, id, tab string) (*dto.ProjectDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectWriteResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateProjectStatusRequest) (*dto.ProjectWriteResponse, error)
	AddLog(ctx context.Context, projectID string, req *dto.CreatePrototypeLogRequest) (*dto.PrototypeLogWriteResponse, error)
}

type projectService struct {
	repo     *repository.Repository
	projects *collectionLoader[model.Project]
	logs     *collectionLoader[model.PrototypeLog]
	remote   bool
	logger   *zap.Logger
	now      func() time.Time
}

// NewProjectService 创建 ProjectService 实例。
// feature.remote_projects 关闭时只使用样例数据与本地缓存，读操作不访问存储。
func NewProjectService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{
		repo: repo,
		projects: &collectionLoader[model.Project]{
			name:    model.Project{}.TableName(),
			cache:   newLocalCache(func(p model.Project) string { return p.ID }),
			samples: func() []model.Project { return sample.MustLoad().Projects },
			timeout: cfg.Store.RequestTimeout,
			logger:  logger,
		},
		logs: &collectionLoader[model.PrototypeLog]{
			name:    model.PrototypeLog{}.TableName(),
			cache:   newLocalCache(func(l model.PrototypeLog) string { return l.ID }),
			samples: func() []model.PrototypeLog { return sample.MustLoad().PrototypeLogs },
			timeout: cfg.Store.RequestTimeout,
			logger:  logger,
		},
		remote: cfg.Feature.RemoteProjects,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Dashboard ──────────────────────

func (s *projectService) Dashboard(ctx context.Context, query string) (*dto.DashboardResponse, error) {
	res := s.loadProjects(ctx)

	filtered := lifecycle.Filter(res.items, query, projectSearchFields)
	list := make([]dto.ProjectResponse, 0, len(filtered))
	for i := range filtered {
		list = append(list, toProjectResponse(&filtered[i]))
	}

	return &dto.DashboardResponse{
		Source: res.source,
		Notice: res.notice,
		Stats:  dashboardStats(res.items),
		Total:  len(res.items),
		List:   list,
	}, nil
}

func (s *projectService) loadProjects(ctx context.Context) loadResult[model.Project] {
	if !s.remote {
		return s.projects.local()
	}
	return s.projects.load(ctx, func(ctx context.Context) ([]model.Project, error) {
		return s.repo.Project.List(ctx, repository.ListOptions{OrderBy: "updated_at", Desc: true})
	})
}

// dashboardStats 统计卡片基于当前持有的全部项目（未过滤）
func dashboardStats(projects []model.Project) dto.DashboardStats {
	stats := dto.DashboardStats{Total: len(projects)}
	categories := make(map[string]struct{})
	for _, p := range projects {
		switch p.Status {
		case model.StatusPrototyping:
			stats.Prototyping++
		case model.StatusFinal:
			stats.Final++
		}
		if c := strings.TrimSpace(p.Category); c != "" {
			categories[strings.ToLower(c)] = struct{}{}
		}
	}
	stats.MaterialResearch = len(categories)
	return stats
}

// ────────────────────── Detail ──────────────────────

// Detail 项目详情；切换标签没有副作用
func (s *projectService) Detail(ctx context.Context, id, tab string) (*dto.ProjectDetailResponse, error) {
	if tab == "" {
		tab = TabOverview
	}
	if tab != TabOverview && tab != TabLogs && tab != TabDiscussion {
		return nil, ErrProjectInvalidTab
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProjectDetailResponse{
		Project:   toProjectResponse(project),
		Stages:    lifecycle.StageSteps(project.Status, lifecycle.StageOrder),
		ActiveTab: tab,
	}

	ds := sample.MustLoad()
	switch tab {
	case TabOverview:
		resp.Overview = &ds.Overview
	case TabLogs:
		logs, source, notice := s.loadLogs(ctx, project.ID)
		resp.Logs = logs
		resp.LogsSource = source
		resp.Notice = notice
		resp.CanAddLog = true
	case TabDiscussion:
		resp.Discussion = ds.Discussion
		resp.ComposerEnabled = false
	}

	return resp, nil
}

// findProject 远程模式先查存储，失败或不存在时回退到本地缓存
func (s *projectService) findProject(ctx context.Context, id string) (*model.Project, error) {
	if s.remote {
		fetchCtx, cancel := context.WithTimeout(ctx, s.projects.timeout)
		p, err := s.repo.Project.GetByID(fetchCtx, id)
		cancel()
		if err == nil {
			return p, nil
		}
		s.logger.Debug("远程查询项目失败，查找本地缓存", zap.String("id", id), zap.Error(err))
	}

	s.projects.cache.seed(s.projects.samples())
	if p, ok := s.projects.cache.find(id); ok {
		return &p, nil
	}
	return nil, ErrProjectNotFound
}

// loadLogs 加载某项目的原型日志，按日期倒序
func (s *projectService) loadLogs(ctx context.Context, projectID string) ([]model.PrototypeLog, dto.Source, *dto.Notice) {
	s.logs.cache.seed(s.logs.samples())
	belongs := func(l model.PrototypeLog) bool { return l.ProjectID == projectID }

	var notice *dto.Notice
	var source dto.Source
	if s.remote {
		fetchCtx, cancel := context.WithTimeout(ctx, s.logs.timeout)
		rows, err := s.repo.PrototypeLog.ListByProject(fetchCtx, projectID)
		cancel()
		switch {
		case err != nil:
			s.logger.Warn("加载原型日志失败，使用本地数据",
				zap.String("project_id", projectID),
				zap.Error(err),
			)
			if pkgerrors.IsSchemaMissing(err) {
				notice = schemaMissingNotice(s.logs.name)
			}
		case len(rows) > 0:
			s.logs.cache.replaceMatching(belongs, rows)
			source = dto.SourceStore
		}
	}

	all, origin, _ := s.logs.cache.snapshot()
	if source == "" {
		source = origin
		if source != dto.SourceSample {
			source = dto.SourceLocal
		}
	}

	logs := make([]model.PrototypeLog, 0)
	for _, l := range all {
		if belongs(l) {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date.Time)
	})
	return logs, source, notice
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectWriteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: judul wajib diisi", ErrProjectInvalid)
	}

	status := model.StatusConcept
	if req.Status != "" {
		status = model.ProjectStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status tidak dikenal", ErrProjectInvalid)
		}
	}

	today := model.NewDate(s.now())
	startDate := today
	if req.StartDate != "" {
		d, err := model.ParseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: tanggal mulai tidak valid", ErrProjectInvalid)
		}
		startDate = d
	}

	project := &model.Project{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Status:       status,
		Category:     strings.TrimSpace(req.Category),
		Designer:     strings.TrimSpace(req.Designer),
		StartDate:    startDate,
		UpdatedAt:    today,
		ThumbnailURL: req.ThumbnailURL,
	}

	return s.saveProject(ctx, "create", project), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *projectService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateProjectStatusRequest) (*dto.ProjectWriteResponse, error) {
	status := model.ProjectStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status tidak dikenal", ErrProjectInvalid)
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Status = status
	project.UpdatedAt = model.NewDate(s.now())

	return s.saveProject(ctx, "update_status", project), nil
}

func (s *projectService) saveProject(ctx context.Context, op string, project *model.Project) *dto.ProjectWriteResponse {
	persisted, notice := s.projects.write(ctx, op,
		func(ctx context.Context) error { return s.repo.Project.Upsert(ctx, project) },
		func(c *localCache[model.Project]) { c.upsert(*project) },
	)
	if persisted && s.remote {
		s.loadProjects(ctx)
	}

	return &dto.ProjectWriteResponse{
		Project:   toProjectResponse(project),
		Persisted: persisted,
		Notice:    notice,
	}
}

// ────────────────────── AddLog ──────────────────────

// AddLog 追加原型日志（只追加，不支持修改）
func (s *projectService) AddLog(ctx context.Context, projectID string, req *dto.CreatePrototypeLogRequest) (*dto.PrototypeLogWriteResponse, error) {
	version := strings.TrimSpace(req.Version)
	notes := strings.TrimSpace(req.Notes)
	if version == "" || notes == "" {
		return nil, fmt.Errorf("%w: versi dan catatan wajib diisi", ErrLogInvalid)
	}

	date := model.NewDate(s.now())
	if req.Date != "" {
		d, err := model.ParseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: tanggal tidak valid", ErrLogInvalid)
		}
		date = d
	}

	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	entry := &model.PrototypeLog{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Date:      date,
		Version:   version,
		Notes:     notes,
		ImageURL:  req.ImageURL,
	}

	persisted, notice := s.logs.write(ctx, "create",
		func(ctx context.Context) error { return s.repo.PrototypeLog.Create(ctx, entry) },
		func(c *localCache[model.PrototypeLog]) { c.upsert(*entry) },
	)

	return &dto.PrototypeLogWriteResponse{Log: *entry, Persisted: persisted, Notice: notice}, nil
}

// ── 内部辅助方法 ──

func projectSearchFields(p model.Project) []string {
	return []string{p.Title, p.Designer}
}

func toProjectResponse(p *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		Category:     p.Category,
		Designer:     p.Designer,
		StartDate:    p.StartDate.String(),
		UpdatedAt:    p.UpdatedAt.String(),
		ThumbnailURL: p.ThumbnailURL,
		Badge:        lifecycle.StatusBadge(p.Status),
		Progress:     lifecycle.StageFraction(p.Status, lifecycle.StageOrder),
	}
}
