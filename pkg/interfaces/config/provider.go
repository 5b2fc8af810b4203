// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/blockverify/internal/config/api"
	clockconfig "github.com/weisyn/blockverify/internal/config/clock"
	eventconfig "github.com/weisyn/blockverify/internal/config/event"
	logconfig "github.com/weisyn/blockverify/internal/config/log"
	badgerconfig "github.com/weisyn/blockverify/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/blockverify/internal/config/storage/memory"
	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
)

// Provider 配置提供者接口
type Provider interface {
	// === 基础设施配置 ===

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetClock 获取时钟配置
	GetClock() *clockconfig.ClockOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// GetBadger 获取 BadgerDB 存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetMemory 获取内存缓存配置
	GetMemory() *memoryconfig.MemoryOptions

	// === 业务配置 ===

	// GetVerify 获取区块验证配置
	GetVerify() *verifyconfig.VerifyOptions

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// === 环境配置 ===

	// GetAppName 获取应用名称
	GetAppName() string

	// GetEnvironment 获取运行环境
	// 返回运行环境字符串：dev | test | prod
	// 未配置时默认为 "prod"
	GetEnvironment() string

	// GetDataDir 获取数据根目录
	GetDataDir() string
}
