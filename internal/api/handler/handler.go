package handler

import (
	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Project   *ProjectHandler
	Material  *MaterialHandler
	Crew      *CrewHandler
	Assistant *AssistantHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Project:   NewProjectHandler(svc.Project, svc.Export),
		Material:  NewMaterialHandler(svc.Material),
		Crew:      NewCrewHandler(svc.Crew, svc.Photo, cfg.Storage.MaxPhotoBytes),
		Assistant: NewAssistantHandler(svc.Chat),
	}
}
