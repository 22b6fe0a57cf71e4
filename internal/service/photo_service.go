package service

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
	"github.com/kng194/kng-rnd/internal/dto"
	"github.com/kng194/kng-rnd/pkg/objectstore"
)

// ── 照片模块业务错误 ──

var (
	ErrPhotoEmpty       = errors.New("未选择照片")
	ErrPhotoInvalidType = errors.New("仅支持图片文件")
	ErrPhotoTooLarge    = errors.New("照片超过大小限制")
	ErrPhotoUpload      = errors.New("照片上传失败")
)

// PhotoService 成员照片业务接口
type PhotoService interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*dto.PhotoResponse, error)
}

type photoService struct {
	uploader objectstore.Uploader
	maxBytes int64
	logger   *zap.Logger
}

// NewPhotoService 创建 PhotoService 实例。
// uploader 为 nil 时照片编码为 data URL，直接保存在成员记录中。
func NewPhotoService(cfg *config.Config, uploader objectstore.Uploader, logger *zap.Logger) PhotoService {
	return &photoService{uploader: uploader, maxBytes: cfg.Storage.MaxPhotoBytes, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *photoService) Upload(ctx context.Context, filename, contentType string, data []byte) (*dto.PhotoResponse, error) {
	if len(data) == 0 {
		return nil, ErrPhotoEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrPhotoTooLarge
	}

	mimeType := normalizeMime(contentType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalizeMime(http.DetectContentType(data))
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrPhotoInvalidType
	}

	if s.uploader == nil {
		return &dto.PhotoResponse{
			PhotoURL: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		}, nil
	}

	url, err := s.uploader.Put(ctx, uuid.NewString()+photoExt(filename, mimeType), mimeType, data)
	if err != nil {
		s.logger.Error("上传照片失败", zap.String("filename", filename), zap.Error(err))
		return nil, ErrPhotoUpload
	}
	return &dto.PhotoResponse{PhotoURL: url}, nil
}

// ── 内部辅助方法 ──

func normalizeMime(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// photoExt 优先沿用原文件扩展名
func photoExt(filename, mimeType string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i:])
	}
	if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
