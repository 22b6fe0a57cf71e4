package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// 最小合法 PNG 文件头
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type mockUploader struct {
	key, contentType string
	err              error
}

func (m *mockUploader) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	m.key, m.contentType = key, contentType
	if m.err != nil {
		return "", m.err
	}
	return "https://cdn.example/" + key, nil
}

func TestPhotoService_Upload_DataURL(t *testing.T) {
	svc := NewPhotoService(testConfig(), nil, zap.NewNop())

	result, err := svc.Upload(context.Background(), "budi.png", "image/png", pngHeader)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}
	if !strings.HasPrefix(result.PhotoURL, "data:image/png;base64,") {
		t.Errorf("期望 data URL，实际 %s", result.PhotoURL)
	}
}

func TestPhotoService_Upload_DetectsMissingContentType(t *testing.T) {
	svc := NewPhotoService(testConfig(), nil, zap.NewNop())

	result, err := svc.Upload(context.Background(), "x", "", pngHeader)
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}
	if !strings.HasPrefix(result.PhotoURL, "data:image/png;base64,") {
		t.Errorf("应根据内容识别为 PNG，实际 %s", result.PhotoURL)
	}
}

func TestPhotoService_Upload_Rejects(t *testing.T) {
	svc := NewPhotoService(testConfig(), nil, zap.NewNop())

	if _, err := svc.Upload(context.Background(), "a.txt", "text/plain", []byte("hello")); !errors.Is(err, ErrPhotoInvalidType) {
		t.Errorf("非图片期望 ErrPhotoInvalidType，实际: %v", err)
	}
	if _, err := svc.Upload(context.Background(), "a.png", "image/png", nil); !errors.Is(err, ErrPhotoEmpty) {
		t.Errorf("空文件期望 ErrPhotoEmpty，实际: %v", err)
	}
	big := make([]byte, 2048)
	if _, err := svc.Upload(context.Background(), "a.png", "image/png", big); !errors.Is(err, ErrPhotoTooLarge) {
		t.Errorf("超限期望 ErrPhotoTooLarge，实际: %v", err)
	}
}

func TestPhotoService_Upload_ObjectStore(t *testing.T) {
	up := &mockUploader{}
	svc := NewPhotoService(testConfig(), up, zap.NewNop())

	result, err := svc.Upload(context.Background(), "Budi.JPG", "image/jpeg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Upload 应成功: %v", err)
	}
	if !strings.HasSuffix(up.key, ".jpg") || up.contentType != "image/jpeg" {
		t.Errorf("对象键或类型不符合预期: key=%s type=%s", up.key, up.contentType)
	}
	if result.PhotoURL != "https://cdn.example/"+up.key {
		t.Errorf("应返回对象公开地址，实际 %s", result.PhotoURL)
	}
}

func TestPhotoService_Upload_ObjectStoreFailure(t *testing.T) {
	svc := NewPhotoService(testConfig(), &mockUploader{err: errors.New("403")}, zap.NewNop())

	if _, err := svc.Upload(context.Background(), "a.png", "image/png", pngHeader); !errors.Is(err, ErrPhotoUpload) {
		t.Errorf("期望 ErrPhotoUpload，实际: %v", err)
	}
}
