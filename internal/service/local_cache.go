package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kng194/kng-rnd/internal/dto"
	pkgerrors "github.com/kng194/kng-rnd/pkg/errors"
)

// ── 进程内集合缓存 ──

// localCache 单个集合的进程内副本。
// 每次修改递增 version，用于丢弃已过期的远程响应。
type localCache[T any] struct {
	mu      sync.RWMutex
	items   []T
	origin  dto.Source
	version uint64
	filled  bool
	idOf    func(T) string
}

func newLocalCache[T any](idOf func(T) string) *localCache[T] {
	return &localCache[T]{idOf: idOf}
}

// snapshot 返回副本与当前版本号
func (c *localCache[T]) snapshot() ([]T, dto.Source, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, c.origin, c.version
}

// replaceIf 仅当版本号未变化时整体替换，返回是否替换成功
func (c *localCache[T]) replaceIf(version uint64, items []T, origin dto.Source) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return false
	}
	c.setLocked(items, origin)
	return true
}

// seed 缓存从未填充时写入样例数据
func (c *localCache[T]) seed(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filled {
		return
	}
	c.setLocked(items, dto.SourceSample)
}

func (c *localCache[T]) setLocked(items []T, origin dto.Source) {
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.origin = origin
	c.filled = true
	c.version++
}

// upsert 存在同 id 记录时原位替换，否则追加。
// 本地修改后来源标记为 local，直到下一次远程替换。
func (c *localCache[T]) upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = dto.SourceLocal
	c.filled = true
	c.version++
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// replaceMatching 用 items 替换所有满足 match 的记录，其余记录保持不变
func (c *localCache[T]) replaceMatching(match func(T) bool, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]T, 0, len(c.items)+len(items))
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = append(kept, items...)
	c.filled = true
	c.version++
}

// remove 删除指定 id；不存在时什么也不做
func (c *localCache[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.origin = dto.SourceLocal
			c.version++
			return
		}
	}
}

// find 按 id 查找
func (c *localCache[T]) find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ── 带回退的集合加载 ──

// collectionLoader 远程优先、失败回退到本地缓存/样例数据的集合加载器
type collectionLoader[T any] struct {
	name    string // 集合（数据表）名，用于提示文案与日志
	cache   *localCache[T]
	samples func() []T
	timeout time.Duration
	logger  *zap.Logger
}

// loadResult 一次加载的结果（未过滤）
type loadResult[T any] struct {
	items  []T
	source dto.Source
	notice *dto.Notice
}

type fetchFunc[T any] func(ctx context.Context) ([]T, error)

// load 远程加载：
//   - 成功且非空：替换缓存，来源 store
//   - 成功但为空：以样例数据替换缓存，来源 sample
//   - 失败：缓存为空时写入样例数据，否则保留本地缓存；表不存在时附带提示
//
// 请求已取消或期间缓存被修改时，丢弃本次远程结果并返回当前缓存。
func (l *collectionLoader[T]) load(ctx context.Context, fetch fetchFunc[T]) loadResult[T] {
	_, _, version := l.cache.snapshot()

	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	rows, err := fetch(fetchCtx)
	cancel()

	if err != nil {
		l.logger.Warn("加载远程集合失败，使用本地数据",
			zap.String("collection", l.name),
			zap.Error(err),
		)
		res := l.local()
		if errors.Is(err, pkgerrors.ErrSchemaMissing) {
			res.notice = schemaMissingNotice(l.name)
		}
		return res
	}

	if ctx.Err() != nil {
		return l.current()
	}

	replacement, origin := rows, dto.SourceStore
	if len(rows) == 0 {
		replacement, origin = l.samples(), dto.SourceSample
	}
	if !l.cache.replaceIf(version, replacement, origin) {
		l.logger.Debug("远程结果已过期，丢弃", zap.String("collection", l.name))
		return l.current()
	}

	items, _, _ := l.cache.snapshot()
	return loadResult[T]{items: items, source: origin}
}

// local 不访问远程，直接返回本地缓存（为空时先写入样例数据）。
// 远程未参与本次结果，因此 store 来源也标记为 local。
func (l *collectionLoader[T]) local() loadResult[T] {
	res := l.current()
	if res.source != dto.SourceSample {
		res.source = dto.SourceLocal
	}
	return res
}

// current 返回缓存现状及其真实来源；远程结果被并发请求抢先写入时使用
func (l *collectionLoader[T]) current() loadResult[T] {
	l.cache.seed(l.samples())
	items, origin, _ := l.cache.snapshot()
	return loadResult[T]{items: items, source: origin}
}

// write 执行远程写入，成功与否都会把 apply 作用到本地缓存。
// 返回是否已持久化，以及仅本地写入时的提示。
func (l *collectionLoader[T]) write(ctx context.Context, op string, call func(ctx context.Context) error, apply func(c *localCache[T])) (bool, *dto.Notice) {
	l.cache.seed(l.samples())

	writeCtx, cancel := context.WithTimeout(ctx, l.timeout)
	err := call(writeCtx)
	cancel()

	apply(l.cache)
	if err != nil {
		l.logger.Warn("远程写入失败，仅修改本地数据",
			zap.String("collection", l.name),
			zap.String("op", op),
			zap.Error(err),
		)
		return false, localOnlyNotice()
	}
	return true, nil
}

func schemaMissingNotice(collection string) *dto.Notice {
	return &dto.Notice{
		Kind:        dto.NoticeSchemaMissing,
		Message:     fmt.Sprintf("Tabel %s belum tersedia, menampilkan data contoh.", collection),
		Dismissible: true,
	}
}

func localOnlyNotice() *dto.Notice {
	return &dto.Notice{
		Kind:        dto.NoticeLocalOnly,
		Message:     "Perubahan hanya tersimpan secara lokal karena server data tidak dapat dihubungi.",
		Dismissible: true,
	}
}
