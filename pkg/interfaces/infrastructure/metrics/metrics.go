// Package metrics 提供模块内存状态上报接口定义
//
// 实现位于各业务模块自身，注册与收集由 pkg/utils/metrics 完成，
// 健康检查接口通过收集结果展示各模块的对象数与缓存条目。
package metrics

// ModuleMemoryStats 模块"自己认账"的逻辑内存状态
//
// 不追求绝对精确，关键是能反映内存使用的趋势和相对大小。
type ModuleMemoryStats struct {
	Module      string `json:"module"`       // 模块名称：verify.chainstate / verify.semantic ...
	Objects     int64  `json:"objects"`      // 主要对象数：已索引区块数 / 未花费输出数 ...
	ApproxBytes int64  `json:"approx_bytes"` // 模块自己估算的字节数
	CacheItems  int64  `json:"cache_items"`  // 缓存条目
}

// MemoryReporter 模块内存上报接口
type MemoryReporter interface {
	// ModuleName 返回模块名称
	ModuleName() string

	// CollectMemoryStats 收集当前模块的内存统计信息
	CollectMemoryStats() ModuleMemoryStats
}
