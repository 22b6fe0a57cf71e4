package dto

// ── 通用 DTO ──

// Source 列表数据来源
type Source string

const (
	SourceStore  Source = "store"  // 远程存储
	SourceSample Source = "sample" // 内置样例数据
	SourceLocal  Source = "local"  // 进程内缓存（含仅本地的修改）
)

// NoticeKind 提示类型
type NoticeKind string

const (
	NoticeSchemaMissing NoticeKind = "schema_missing"
	NoticeLocalOnly     NoticeKind = "local_only"
)

// Notice 可关闭的页面提示
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Message     string     `json:"message"`
	Dismissible bool       `json:"dismissible"`
}

// ListQuery 列表搜索参数
type ListQuery struct {
	Q string `form:"q"`
}
