package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/kng194/kng-rnd/config"
)

// Uploader 对象上传接口，返回可公开访问的 URL
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// S3Client 基于 aws-sdk-go 的 S3 上传客户端
type S3Client struct {
	svc           *s3.S3
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	keyPrefix     string
}

// NewS3Client 创建 S3 客户端；Endpoint 非空时使用 path-style（兼容 MinIO 等）
func NewS3Client(cfg *config.S3Config) (*S3Client, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("创建 AWS 会话失败: %w", err)
	}

	return &S3Client{
		svc:           s3.New(sess),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		keyPrefix:     cfg.KeyPrefix,
	}, nil
}

// Put 上传对象并返回公开 URL
func (c *S3Client) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	objectKey := c.keyPrefix + key

	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(body),
	})
	if err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}

	return c.PublicURL(objectKey), nil
}

// PublicURL 拼接对象的公开访问地址
func (c *S3Client) PublicURL(objectKey string) string {
	switch {
	case c.publicBaseURL != "":
		return c.publicBaseURL + "/" + objectKey
	case c.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, objectKey)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, objectKey)
	}
}
