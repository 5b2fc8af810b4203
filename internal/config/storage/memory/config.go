package memory

import (
	"time"

	configtypes "github.com/weisyn/blockverify/pkg/types"
)

// MemoryOptions 内存缓存配置选项
type MemoryOptions struct {
	LifeWindow         time.Duration `json:"life_window"`           // 条目生命周期
	CleanWindow        time.Duration `json:"clean_window"`          // 过期条目清理周期
	MaxEntrySize       int           `json:"max_entry_size"`        // 单条目最大字节数
	MaxEntriesInWindow int           `json:"max_entries_in_window"` // 生命周期内预估条目数
}

// Config 内存存储配置实现
type Config struct {
	options *MemoryOptions
}

// New 创建内存存储配置实现，无法解析的时长保持默认值
func New(userConfig *configtypes.UserMemoryConfig) *Config {
	options := &MemoryOptions{
		LifeWindow:         defaultLifeWindow,
		CleanWindow:        defaultCleanWindow,
		MaxEntrySize:       defaultMaxEntrySize,
		MaxEntriesInWindow: defaultMaxEntriesInWindow,
	}

	if userConfig != nil {
		if userConfig.LifeWindow != nil {
			if d, err := time.ParseDuration(*userConfig.LifeWindow); err == nil && d > 0 {
				options.LifeWindow = d
			}
		}
		if userConfig.CleanWindow != nil {
			if d, err := time.ParseDuration(*userConfig.CleanWindow); err == nil && d > 0 {
				options.CleanWindow = d
			}
		}
		if userConfig.MaxEntrySize != nil && *userConfig.MaxEntrySize > 0 {
			options.MaxEntrySize = *userConfig.MaxEntrySize
		}
	}

	return &Config{options: options}
}

// NewFromOptions 从已解析的选项创建配置
func NewFromOptions(options *MemoryOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取完整的内存存储配置选项
func (c *Config) GetOptions() *MemoryOptions {
	return c.options
}

// GetLifeWindow 获取条目生命周期
func (c *Config) GetLifeWindow() time.Duration {
	return c.options.LifeWindow
}

// GetCleanWindow 获取清理周期
func (c *Config) GetCleanWindow() time.Duration {
	return c.options.CleanWindow
}

// GetMaxEntrySize 获取单条目最大字节数
func (c *Config) GetMaxEntrySize() int {
	return c.options.MaxEntrySize
}

// GetMaxEntriesInWindow 获取预估条目数
func (c *Config) GetMaxEntriesInWindow() int {
	return c.options.MaxEntriesInWindow
}
