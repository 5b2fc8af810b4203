package memory

import "time"

// 内存缓存默认配置值
const (
	// defaultLifeWindow 语义验证结论缓存 10 分钟
	defaultLifeWindow = 10 * time.Minute

	// defaultCleanWindow 每 5 分钟清理过期条目
	defaultCleanWindow = 5 * time.Minute

	// defaultMaxEntrySize 结论条目很小，按 512 字节预分配
	defaultMaxEntrySize = 512

	// defaultMaxEntriesInWindow 预估 10000 条，控制 BigCache 预分配内存
	defaultMaxEntriesInWindow = 10000
)
