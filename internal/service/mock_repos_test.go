package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/model"
	"github.com/kng194/kng-rnd/internal/repository"
	pkgerrors "github.com/kng194/kng-rnd/pkg/errors"
)

// ── 测试配置 ──

func testConfig() *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{RequestTimeout: time.Second},
		LLM:     config.LLMConfig{RequestTimeout: time.Second},
		Storage: config.StorageConfig{MaxPhotoBytes: 1024},
		Chat:    config.ChatConfig{InflightTTL: time.Minute, ReplyTTL: time.Hour},
		Feature: config.FeatureConfig{RemoteProjects: true, RemoteMaterials: true},
	}
}

// mockFailure 模拟存储故障：err 非 nil 时所有调用返回该错误
type mockFailure struct {
	err error
}

func (f *mockFailure) fail(err error) { f.err = err }

func schemaMissing(table string) error {
	return &pkgerrors.SchemaError{Table: table}
}

// ── Mock CrewRepository ──

type mockCrewRepo struct {
	mockFailure
	mu      sync.Mutex
	crews   map[string]model.Crew
	calls   int
	upserts int
	deletes int
}

func newMockCrewRepo() *mockCrewRepo {
	return &mockCrewRepo{crews: make(map[string]model.Crew)}
}

func (m *mockCrewRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Crew, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Crew, 0, len(m.crews))
	for _, c := range m.crews {
		result = append(result, c)
	}
	if opts.OrderBy == "name" {
		sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}
	return result, nil
}

func (m *mockCrewRepo) GetByID(_ context.Context, id string) (*model.Crew, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.crews[id]; ok {
		return &c, nil
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockCrewRepo) Upsert(_ context.Context, crew *model.Crew) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.upserts++
	if m.err != nil {
		return m.err
	}
	m.crews[crew.ID] = *crew
	return nil
}

func (m *mockCrewRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.deletes++
	if m.err != nil {
		return m.err
	}
	delete(m.crews, id)
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	mockFailure
	mu       sync.Mutex
	projects map[string]model.Project
	calls    int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]model.Project)}
}

func (m *mockProjectRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Project, 0, len(m.projects))
	for _, p := range m.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.projects[id]; ok {
		return &p, nil
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockProjectRepo) Upsert(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.projects[project.ID] = *project
	return nil
}

// ── Mock MaterialRepository ──

type mockMaterialRepo struct {
	mockFailure
	materials []model.Material
	calls     int
}

func newMockMaterialRepo() *mockMaterialRepo {
	return &mockMaterialRepo{}
}

func (m *mockMaterialRepo) List(_ context.Context, _ repository.ListOptions) ([]model.Material, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Material(nil), m.materials...), nil
}

func (m *mockMaterialRepo) Upsert(_ context.Context, material *model.Material) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.materials = append(m.materials, *material)
	return nil
}

// ── Mock PrototypeLogRepository ──

type mockPrototypeLogRepo struct {
	mockFailure
	logs  []model.PrototypeLog
	calls int
}

func newMockPrototypeLogRepo() *mockPrototypeLogRepo {
	return &mockPrototypeLogRepo{}
}

func (m *mockPrototypeLogRepo) ListByProject(_ context.Context, projectID string) ([]model.PrototypeLog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var result []model.PrototypeLog
	for _, l := range m.logs {
		if l.ProjectID == projectID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockPrototypeLogRepo) Create(_ context.Context, log *model.PrototypeLog) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, *log)
	return nil
}

// ── Repository 聚合 ──

type mockRepos struct {
	crew     *mockCrewRepo
	project  *mockProjectRepo
	material *mockMaterialRepo
	logs     *mockPrototypeLogRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		crew:     newMockCrewRepo(),
		project:  newMockProjectRepo(),
		material: newMockMaterialRepo(),
		logs:     newMockPrototypeLogRepo(),
	}
	return &repository.Repository{
		Crew:         m.crew,
		Project:      m.project,
		Material:     m.material,
		PrototypeLog: m.logs,
	}, m
}

// fixedNow 测试使用的固定"今天"
func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}
