package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ── 远程存储错误分类 ──

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrSchemaMissing 目标集合（数据表）不存在
	ErrSchemaMissing = errors.New("集合不存在")
	// ErrStoreUnavailable 数据存储不可用（演示模式或连接失败）
	ErrStoreUnavailable = errors.New("数据存储不可用")
	// ErrInvalidOrder 排序/过滤字段不在白名单内
	ErrInvalidOrder = errors.New("不支持的排序或过滤字段")
)

// PostgreSQL undefined_table
const pgUndefinedTable = "42P01"

// Classify 将 GORM / PostgreSQL 原始错误映射为上面的哨兵错误。
// 无法识别的错误原样返回。
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return &SchemaError{Table: pgErr.TableName, Err: err}
	}
	return err
}

// SchemaError 携带缺失的表名，errors.Is(err, ErrSchemaMissing) 为真
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return ErrSchemaMissing.Error()
	}
	return ErrSchemaMissing.Error() + ": " + e.Table
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaMissing }

func (e *SchemaError) Unwrap() error { return e.Err }

// IsSchemaMissing 判断错误是否表示集合不存在
func IsSchemaMissing(err error) bool {
	return errors.Is(err, ErrSchemaMissing)
}
