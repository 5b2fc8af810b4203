package badger

import (
	"path/filepath"

	configtypes "github.com/weisyn/blockverify/pkg/types"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	// === 基础配置 ===
	Path       string `json:"path"`        // 数据库存储路径
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入（数据安全性）
	InMemory   bool   `json:"in_memory"`   // 纯内存模式，不落盘

	// === 基础性能配置 ===
	MemTableSize int64 `json:"mem_table_size"` // 内存表大小
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置实现
//
// 路径规则：用户配置的 path 优先；否则使用 {dataDir}/badger。
func New(userConfig *configtypes.UserBadgerConfig, dataDir string) *Config {
	options := createDefaultBadgerOptions(dataDir)

	if userConfig != nil {
		if userConfig.Path != nil && *userConfig.Path != "" {
			options.Path = *userConfig.Path
		}
		if userConfig.SyncWrites != nil {
			options.SyncWrites = *userConfig.SyncWrites
		}
		if userConfig.InMemory != nil {
			options.InMemory = *userConfig.InMemory
		}
	}

	return &Config{options: options}
}

// NewFromOptions 从BadgerOptions创建配置实现
func NewFromOptions(options *BadgerOptions) *Config {
	return &Config{options: options}
}

// createDefaultBadgerOptions 创建默认BadgerDB配置
func createDefaultBadgerOptions(dataDir string) *BadgerOptions {
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return &BadgerOptions{
		Path:         filepath.Join(dataDir, "badger"),
		SyncWrites:   defaultSyncWrites,
		InMemory:     defaultInMemory,
		MemTableSize: defaultMemTableSize,
	}
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}

// GetPath 获取数据库路径
func (c *Config) GetPath() string {
	return c.options.Path
}

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool {
	return c.options.SyncWrites
}

// IsInMemory 是否为纯内存模式
func (c *Config) IsInMemory() bool {
	return c.options.InMemory
}

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 {
	return c.options.MemTableSize
}
