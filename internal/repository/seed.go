package repository

import (
	"context"
	"fmt"

	"github.com/kng194/kng-rnd/internal/sample"
)

// SeedResult 各集合写入条数
type SeedResult struct {
	Projects      int
	Materials     int
	Crews         int
	PrototypeLogs int
}

// Seed 将样例数据写入存储
// 项目/材料/成员按 id upsert，可重复执行；日志只追加存储中尚不存在的 id
func Seed(ctx context.Context, repo *Repository, ds *sample.Dataset) (*SeedResult, error) {
	res := &SeedResult{}

	for i := range ds.Projects {
		if err := repo.Project.Upsert(ctx, &ds.Projects[i]); err != nil {
			return res, fmt.Errorf("写入项目 %s 失败: %w", ds.Projects[i].ID, err)
		}
		res.Projects++
	}

	for i := range ds.Materials {
		if err := repo.Material.Upsert(ctx, &ds.Materials[i]); err != nil {
			return res, fmt.Errorf("写入材料 %s 失败: %w", ds.Materials[i].ID, err)
		}
		res.Materials++
	}

	for i := range ds.Crews {
		if err := repo.Crew.Upsert(ctx, &ds.Crews[i]); err != nil {
			return res, fmt.Errorf("写入成员 %s 失败: %w", ds.Crews[i].ID, err)
		}
		res.Crews++
	}

	existing := make(map[string]map[string]bool)
	for i := range ds.PrototypeLogs {
		l := &ds.PrototypeLogs[i]
		ids, ok := existing[l.ProjectID]
		if !ok {
			rows, err := repo.PrototypeLog.ListByProject(ctx, l.ProjectID)
			if err != nil {
				return res, fmt.Errorf("读取项目 %s 的日志失败: %w", l.ProjectID, err)
			}
			ids = make(map[string]bool, len(rows))
			for _, r := range rows {
				ids[r.ID] = true
			}
			existing[l.ProjectID] = ids
		}
		if ids[l.ID] {
			continue
		}
		if err := repo.PrototypeLog.Create(ctx, l); err != nil {
			return res, fmt.Errorf("写入日志 %s 失败: %w", l.ID, err)
		}
		ids[l.ID] = true
		res.PrototypeLogs++
	}

	return res, nil
}
