package storage

import (
	"context"
	"time"
)

// MemoryStore 进程内缓存存储
type MemoryStore interface {
	// Get 获取缓存值；exists=false 表示不存在或已过期
	Get(ctx context.Context, key string) (value []byte, exists bool, err error)

	// Set 设置缓存值，ttl<=0 表示使用缓存的默认生命周期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete 删除缓存值
	Delete(ctx context.Context, key string) error

	// Count 当前条目数
	Count() int

	// Close 关闭缓存并释放资源
	Close() error
}
