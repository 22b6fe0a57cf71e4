package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kng194/kng-rnd/internal/api/handler"
	"github.com/kng194/kng-rnd/internal/api/router"
	"github.com/kng194/kng-rnd/internal/repository"
	"github.com/kng194/kng-rnd/internal/service"
	"github.com/kng194/kng-rnd/pkg/database"
	"github.com/kng194/kng-rnd/pkg/llm"
	"github.com/kng194/kng-rnd/pkg/objectstore"
	"github.com/kng194/kng-rnd/pkg/redis"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("remote_projects", cfg.Feature.RemoteProjects),
		zap.Bool("remote_materials", cfg.Feature.RemoteMaterials),
	)

	// 1. 连接数据库（store.required=false 时允许离线启动）
	db, repo, err := a.openRepository()
	if err != nil {
		return err
	}

	// 2. 连接 Redis（可选：连接失败时降级为进程内会话存储，且不限流）
	var chatStore service.ChatStore
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，AI 助手会话将保存在进程内", zap.Error(err))
		rdb = nil
	} else {
		chatStore = rdb
	}

	// 3. 对象存储（可选：未启用时照片以 data URL 内联）
	var uploader objectstore.Uploader
	if cfg.Storage.S3.Enabled {
		s3c, err := objectstore.NewS3Client(&cfg.Storage.S3)
		if err != nil {
			return fmt.Errorf("初始化对象存储失败: %w", err)
		}
		uploader = s3c
		logger.Info("照片将上传至对象存储", zap.String("bucket", cfg.Storage.S3.Bucket))
	}

	// 4. 文本生成客户端
	completer := llm.NewGeminiClient(&cfg.LLM)
	if cfg.LLM.APIKey == "" {
		logger.Warn("未配置 llm.api_key，AI 助手将返回固定致歉文本")
	}

	// 5. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, completer, chatStore, uploader, logger)
	h := handler.NewHandler(cfg, svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 8. 监听系统信号，优雅关闭
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP 服务器异常", zap.Error(err))
			return err
		}
	case <-sigCtx.Done():
		logger.Info("收到关闭信号，开始优雅关闭...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
	return nil
}

// openRepository 连接数据库并按配置执行迁移
// 数据库不可达且 store.required=false 时返回离线仓库，所有读取回退到示例数据
func (a *app) openRepository() (*gorm.DB, *repository.Repository, error) {
	cfg, logger := a.cfg, a.logger

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		if cfg.Store.Required {
			return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
		}
		logger.Warn("数据库连接失败，以离线模式启动", zap.Error(err))
		return nil, repository.NewOfflineRepository(), nil
	}
	logger.Info("数据库连接成功")

	if cfg.Database.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		// 迁移失败不阻断启动：缺表时由 Service 层提示 schema_missing
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			if cfg.Store.Required {
				return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
			}
			logger.Warn("数据库迁移失败", zap.Error(err))
		}
	}

	return db, repository.NewRepository(db), nil
}
