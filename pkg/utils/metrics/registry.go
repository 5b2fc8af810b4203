// Package metrics 提供内存上报器的注册和收集工具
//
// 单机进程全局的注册表，使用读写锁保护并发访问。
package metrics

import (
	"sync"

	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
)

var (
	// mu 保护 reporters 切片的读写锁
	mu sync.RWMutex

	// reporters 全局注册的内存上报器列表
	reporters []metrics.MemoryReporter
)

// RegisterMemoryReporter 注册一个内存上报器
//
// 说明：
//   - 建议在模块的 fx module.go 中，实例化完主要服务后调用
//   - 如果 r 为 nil，则忽略
func RegisterMemoryReporter(r metrics.MemoryReporter) {
	if r == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	reporters = append(reporters, r)
}

// CollectAllModuleStats 收集所有已注册模块的内存统计信息
//
// 返回的切片顺序与注册顺序一致；单个模块 panic 时跳过该模块。
func CollectAllModuleStats() []metrics.ModuleMemoryStats {
	mu.RLock()
	defer mu.RUnlock()

	stats := make([]metrics.ModuleMemoryStats, 0, len(reporters))
	for _, r := range reporters {
		func() {
			defer func() {
				_ = recover()
			}()
			stats = append(stats, r.CollectMemoryStats())
		}()
	}

	return stats
}

// GetRegisteredReportersCount 返回已注册的上报器数量
func GetRegisteredReportersCount() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(reporters)
}

// ClearAllMemoryReporters 清空所有已注册的上报器（主要用于测试）
func ClearAllMemoryReporters() {
	mu.Lock()
	defer mu.Unlock()
	reporters = nil
}
