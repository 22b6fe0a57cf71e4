package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/internal/model"
)

// ── 测试辅助 ──

func setupTestProjectService(remote bool) (ProjectService, *mockRepos) {
	repo, mocks := newMockRepository()
	cfg := testConfig()
	cfg.Feature.RemoteProjects = remote
	svc := NewProjectService(cfg, repo, zap.NewNop())
	svc.(*projectService).now = fixedNow
	return svc, mocks
}

// ── Dashboard 测试 ──

func TestProjectService_Dashboard_RemoteOffUsesSamples(t *testing.T) {
	svc, mocks := setupTestProjectService(false)

	result, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if result.Source != dto.SourceSample || result.Total != 3 {
		t.Errorf("期望 3 条样例项目，实际 source=%s total=%d", result.Source, result.Total)
	}
	if mocks.project.calls != 0 {
		t.Errorf("关闭远程项目时不应访问存储，实际调用 %d 次", mocks.project.calls)
	}

	stats := result.Stats
	if stats.Total != 3 || stats.Prototyping != 1 || stats.Final != 0 || stats.MaterialResearch != 3 {
		t.Errorf("统计不符合预期: %+v", stats)
	}
}

func TestProjectService_Dashboard_Search(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	result, _ := svc.Dashboard(context.Background(), "fauzi")
	if len(result.List) != 1 || result.List[0].ID != "2" {
		t.Fatalf("按设计师搜索应命中 Bambu Watch，实际 %+v", result.List)
	}
	if result.Stats.Total != 3 {
		t.Error("统计应基于未过滤的列表")
	}

	result, _ = svc.Dashboard(context.Background(), "RADIO")
	if len(result.List) != 1 || result.List[0].ID != "1" {
		t.Errorf("按标题搜索应命中 Tjawang Radio，实际 %+v", result.List)
	}
}

func TestProjectService_Dashboard_RemoteStore(t *testing.T) {
	svc, mocks := setupTestProjectService(true)
	mocks.project.projects["p1"] = model.Project{ID: "p1", Title: "Kursi Rotan", Status: model.StatusFinal, Category: "Furniture"}

	result, _ := svc.Dashboard(context.Background(), "")
	if result.Source != dto.SourceStore || result.Total != 1 {
		t.Fatalf("期望来自存储的 1 条项目，实际 source=%s total=%d", result.Source, result.Total)
	}
	if result.Stats.Final != 1 {
		t.Errorf("期望 Final=1，实际 %d", result.Stats.Final)
	}
	if result.List[0].Badge != "purple" || result.List[0].Progress != 1 {
		t.Errorf("Final 项目徽标/进度不符合预期: %+v", result.List[0])
	}
}

func TestProjectService_Dashboard_SchemaMissing(t *testing.T) {
	svc, mocks := setupTestProjectService(true)
	mocks.project.fail(schemaMissing("projects"))

	result, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard 不应返回错误: %v", err)
	}
	if result.Total != 3 || result.Source != dto.SourceSample {
		t.Errorf("期望回退到 3 条样例，实际 source=%s total=%d", result.Source, result.Total)
	}
	if result.Notice == nil || result.Notice.Message != "Tabel projects belum tersedia, menampilkan data contoh." {
		t.Errorf("期望 schema_missing 提示，实际 %+v", result.Notice)
	}
}

// ── Detail 测试 ──

func TestProjectService_Detail_Overview(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	result, err := svc.Detail(context.Background(), "1", "")
	if err != nil {
		t.Fatalf("Detail 应成功: %v", err)
	}
	if result.ActiveTab != TabOverview {
		t.Errorf("默认标签应为 overview，实际 %s", result.ActiveTab)
	}
	if result.Overview == nil || len(result.Overview.Team) == 0 {
		t.Error("概览应包含规格与团队")
	}
	if result.Project.Progress != 0.5 {
		t.Errorf("Prototyping 进度应为 0.5，实际 %v", result.Project.Progress)
	}
	if len(result.Stages) != 5 || !result.Stages[1].Completed || result.Stages[2].Completed || !result.Stages[2].Reached {
		t.Errorf("阶段节点不符合预期: %+v", result.Stages)
	}
}

func TestProjectService_Detail_LogsNewestFirst(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	result, err := svc.Detail(context.Background(), "1", TabLogs)
	if err != nil {
		t.Fatalf("Detail 应成功: %v", err)
	}
	if len(result.Logs) != 2 {
		t.Fatalf("期望 2 条日志，实际 %d", len(result.Logs))
	}
	if result.Logs[0].Version != "v0.3" {
		t.Errorf("日志应按日期倒序，首条期望 v0.3，实际 %s", result.Logs[0].Version)
	}
	if !result.CanAddLog {
		t.Error("日志标签应允许追加日志")
	}
	if result.Overview != nil || result.Discussion != nil {
		t.Error("日志标签不应携带其他标签内容")
	}
}

func TestProjectService_Detail_Discussion(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	result, _ := svc.Detail(context.Background(), "1", TabDiscussion)
	if len(result.Discussion) == 0 {
		t.Error("讨论标签应包含静态对话")
	}
	if result.ComposerEnabled {
		t.Error("讨论输入框不应启用")
	}
}

func TestProjectService_Detail_Errors(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	if _, err := svc.Detail(context.Background(), "999", ""); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
	if _, err := svc.Detail(context.Background(), "1", "gallery"); !errors.Is(err, ErrProjectInvalidTab) {
		t.Errorf("期望 ErrProjectInvalidTab，实际: %v", err)
	}
}

func TestProjectService_Detail_RemoteFallsBackToCache(t *testing.T) {
	svc, mocks := setupTestProjectService(true)
	mocks.project.fail(errors.New("connection refused"))

	result, err := svc.Detail(context.Background(), "2", "")
	if err != nil {
		t.Fatalf("远程失败时应回退到样例数据: %v", err)
	}
	if result.Project.Title != "Bambu Watch Series X" {
		t.Errorf("期望 Bambu Watch Series X，实际 %s", result.Project.Title)
	}
}

// ── Create / UpdateStatus 测试 ──

func TestProjectService_Create_Defaults(t *testing.T) {
	svc, mocks := setupTestProjectService(false)

	result, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Title: "Meja Lipat Jati", Designer: "Rina"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	p := result.Project
	if p.ID == "" || p.Status != model.StatusConcept {
		t.Errorf("期望分配 ID 且状态默认为 Concept，实际 %+v", p)
	}
	if p.StartDate != "2026-03-01" || p.UpdatedAt != "2026-03-01" {
		t.Errorf("日期应默认为今天，实际 start=%s updated=%s", p.StartDate, p.UpdatedAt)
	}
	if !result.Persisted {
		t.Error("期望 persisted=true")
	}
	if _, ok := mocks.project.projects[p.ID]; !ok {
		t.Error("项目应写入存储")
	}

	dash, _ := svc.Dashboard(context.Background(), "jati")
	if len(dash.List) != 1 || dash.Total != 4 {
		t.Errorf("新建项目应出现在首页，实际 total=%d list=%d", dash.Total, len(dash.List))
	}
}

func TestProjectService_Create_Invalid(t *testing.T) {
	svc, mocks := setupTestProjectService(true)

	if _, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Title: "  "}); !errors.Is(err, ErrProjectInvalid) {
		t.Errorf("空标题期望 ErrProjectInvalid，实际: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Title: "X", Status: "Done"}); !errors.Is(err, ErrProjectInvalid) {
		t.Errorf("非法状态期望 ErrProjectInvalid，实际: %v", err)
	}
	if mocks.project.calls != 0 {
		t.Error("校验失败时不应访问存储")
	}
}

func TestProjectService_UpdateStatus_LocalFallback(t *testing.T) {
	svc, mocks := setupTestProjectService(true)
	mocks.project.fail(errors.New("timeout"))

	result, err := svc.UpdateStatus(context.Background(), "3", &dto.UpdateProjectStatusRequest{Status: "Testing"})
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if result.Persisted || result.Notice == nil {
		t.Errorf("期望仅本地保存并带提示，实际 %+v", result)
	}
	if result.Project.Status != model.StatusTesting || result.Project.UpdatedAt != "2026-03-01" {
		t.Errorf("状态或更新时间不符合预期: %+v", result.Project)
	}

	detail, _ := svc.Detail(context.Background(), "3", "")
	if detail.Project.Status != model.StatusTesting {
		t.Errorf("本地修改应在详情中可见，实际 %s", detail.Project.Status)
	}
}

func TestProjectService_UpdateStatus_Errors(t *testing.T) {
	svc, _ := setupTestProjectService(false)

	if _, err := svc.UpdateStatus(context.Background(), "1", &dto.UpdateProjectStatusRequest{Status: "Design"}); !errors.Is(err, ErrProjectInvalid) {
		t.Errorf("Design 不是合法状态，期望 ErrProjectInvalid，实际: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "999", &dto.UpdateProjectStatusRequest{Status: "Final"}); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── AddLog 测试 ──

func TestProjectService_AddLog(t *testing.T) {
	svc, mocks := setupTestProjectService(false)

	result, err := svc.AddLog(context.Background(), "1", &dto.CreatePrototypeLogRequest{Version: "v0.4", Notes: "Finishing minyak tung"})
	if err != nil {
		t.Fatalf("AddLog 应成功: %v", err)
	}
	if result.Log.Date.String() != "2026-03-01" || !result.Persisted {
		t.Errorf("日志结果不符合预期: %+v", result)
	}
	if len(mocks.logs.logs) != 1 {
		t.Error("日志应写入存储")
	}

	detail, _ := svc.Detail(context.Background(), "1", TabLogs)
	if len(detail.Logs) != 3 || detail.Logs[0].Version != "v0.4" {
		t.Errorf("新日志应位于最前，实际 %+v", detail.Logs)
	}
}

func TestProjectService_AddLog_Invalid(t *testing.T) {
	svc, mocks := setupTestProjectService(false)

	_, err := svc.AddLog(context.Background(), "1", &dto.CreatePrototypeLogRequest{Version: "v1"})
	if !errors.Is(err, ErrLogInvalid) {
		t.Errorf("缺少备注期望 ErrLogInvalid，实际: %v", err)
	}
	_, err = svc.AddLog(context.Background(), "999", &dto.CreatePrototypeLogRequest{Version: "v1", Notes: "n"})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
	if mocks.logs.calls != 0 {
		t.Error("失败时不应写入存储")
	}
}
