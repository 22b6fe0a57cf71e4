package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/internal/repository"
	"github.com/kng194/kng-rnd/internal/sample"
	"github.com/kng194/kng-rnd/pkg/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.NewDB(&a.cfg.Database, a.cfg.Log.Level, a.logger)
			if err != nil {
				return fmt.Errorf("数据库连接失败: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
			}
			defer sqlDB.Close()

			if down {
				return database.RollbackMigrations(sqlDB, a.logger)
			}
			return database.RunMigrations(sqlDB, a.logger)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "回滚全部迁移")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "将内置示例数据写入数据库（可重复执行）",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.NewDB(&a.cfg.Database, a.cfg.Log.Level, a.logger)
			if err != nil {
				return fmt.Errorf("数据库连接失败: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
			}
			defer sqlDB.Close()

			if err := database.RunMigrations(sqlDB, a.logger); err != nil {
				return err
			}

			ds, err := sample.Load()
			if err != nil {
				return err
			}
			res, err := repository.Seed(cmd.Context(), repository.NewRepository(db), ds)
			if err != nil {
				return err
			}

			a.logger.Info("示例数据写入完成",
				zap.Int("projects", res.Projects),
				zap.Int("materials", res.Materials),
				zap.Int("crews", res.Crews),
				zap.Int("prototype_logs", res.PrototypeLogs),
			)
			return nil
		},
	}
}
