package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/config"
)

// Client Redis 客户端封装
// 用于接口限流、AI 助手会话的并发保护与最近回复
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Wrap 包装已有的 go-redis 客户端（测试中配合 miniredis 使用）
func Wrap(rdb *goredis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── 滑动窗口限流 ──

// CheckRateLimit 基于有序集合的滑动窗口计数
// 返回 true 表示本次请求允许通过（并已计入窗口）
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if card.Val() >= int64(limit) {
		return false, nil
	}

	pipe = c.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now), Member: uuid.NewString()})
	pipe.PExpire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ── AI 助手会话 ──

const (
	chatInflightPrefix = "chat:inflight:"
	chatReplyPrefix    = "chat:reply:"
)

// AcquireChat 为会话加并发锁，已被占用时返回 false
// ttl 兜底：进程异常退出时锁也会自动过期
func (c *Client) AcquireChat(ctx context.Context, session string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, chatInflightPrefix+session, "1", ttl).Result()
}

// ReleaseChat 释放会话并发锁
func (c *Client) ReleaseChat(ctx context.Context, session string) error {
	return c.rdb.Del(ctx, chatInflightPrefix+session).Err()
}

// SaveReply 覆盖保存会话的最近一条回复
func (c *Client) SaveReply(ctx context.Context, session, reply string, ttl time.Duration) error {
	return c.rdb.Set(ctx, chatReplyPrefix+session, reply, ttl).Err()
}

// LastReply 读取会话最近一条回复，不存在时返回 ("", false, nil)
func (c *Client) LastReply(ctx context.Context, session string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, chatReplyPrefix+session).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
