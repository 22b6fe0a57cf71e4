package service

import (
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/repository"
	"github.com/kng194/kng-rnd/pkg/llm"
	"github.com/kng194/kng-rnd/pkg/objectstore"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Project  ProjectService
	Material MaterialService
	Crew     CrewService
	Photo    PhotoService
	Export   ExportService
	Chat     ChatService
}

// NewService 创建 Service 聚合
// chatStore / uploader 均可为 nil：分别退化为进程内会话存储与 data URL 照片
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	completer llm.Completer,
	chatStore ChatStore,
	uploader objectstore.Uploader,
	logger *zap.Logger,
) *Service {
	project := NewProjectService(cfg, repo, logger)
	return &Service{
		Project:  project,
		Material: NewMaterialService(cfg, repo, logger),
		Crew:     NewCrewService(cfg, repo, logger),
		Photo:    NewPhotoService(cfg, uploader, logger),
		Export:   NewExportService(project, logger),
		Chat:     NewChatService(cfg, completer, chatStore, logger),
	}
}
