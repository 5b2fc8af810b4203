// Package storage 定义存储基础设施接口
//
// 💾 **存储接口 (Storage Interfaces)**
//
// - BadgerStore：持久化键值存储，链状态服务用它保存已提交区块与索引
// - MemoryStore：进程内缓存，语义验证器用它缓存验证结论
package storage

import (
	"context"
)

// BadgerStore BadgerDB 持久化存储
type BadgerStore interface {
	// Close 关闭数据库连接
	// 应用关闭时必须调用此方法以避免数据损坏
	Close() error

	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对，已存在时覆盖
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键，键不存在时不返回错误
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描键值对
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在单个读写事务中执行 fn
	// fn 返回错误时事务被丢弃，否则提交
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error
}

// BadgerTransaction 事务内的键值操作
type BadgerTransaction interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Exists(key []byte) (bool, error)
}
