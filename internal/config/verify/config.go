package verify

import (
	"time"

	configtypes "github.com/weisyn/blockverify/pkg/types"
)

// VerifyOptions 区块验证配置选项
type VerifyOptions struct {
	// === 流水线配置 ===
	MaxConcurrency int `json:"max_concurrency"` // 批量验证并发上限

	// === 语义验证配置 ===
	MaxFutureDrift       time.Duration `json:"max_future_drift"`       // 区块时间允许超前本地时钟的幅度
	MaxBlockVersion      uint32        `json:"max_block_version"`      // 支持的最高区块版本
	MaxBlockTransactions int           `json:"max_block_transactions"` // 单区块交易数上限
	MaxDifficulty        uint64        `json:"max_difficulty"`         // 难度（前导零位数）上限

	// === 链状态配置 ===
	GenesisFile string `json:"genesis_file"` // 创世区块 JSON 文件，为空时接受第一个高度为0的区块
}

// Config 区块验证配置实现
type Config struct {
	options *VerifyOptions
}

// New 创建区块验证配置实现
func New(userConfig *configtypes.UserVerifyConfig) *Config {
	options := DefaultOptions()

	if userConfig != nil {
		if userConfig.MaxConcurrency != nil && *userConfig.MaxConcurrency > 0 {
			options.MaxConcurrency = *userConfig.MaxConcurrency
		}
		if userConfig.MaxFutureDriftSeconds != nil {
			options.MaxFutureDrift = time.Duration(*userConfig.MaxFutureDriftSeconds) * time.Second
		}
		if userConfig.MaxBlockVersion != nil {
			options.MaxBlockVersion = *userConfig.MaxBlockVersion
		}
		if userConfig.MaxBlockTransactions != nil && *userConfig.MaxBlockTransactions > 0 {
			options.MaxBlockTransactions = *userConfig.MaxBlockTransactions
		}
		if userConfig.GenesisFile != nil {
			options.GenesisFile = *userConfig.GenesisFile
		}
	}

	return &Config{options: options}
}

// DefaultOptions 返回默认验证配置
func DefaultOptions() *VerifyOptions {
	return &VerifyOptions{
		MaxConcurrency:       defaultMaxConcurrency,
		MaxFutureDrift:       defaultMaxFutureDrift,
		MaxBlockVersion:      defaultMaxBlockVersion,
		MaxBlockTransactions: defaultMaxBlockTransactions,
		MaxDifficulty:        defaultMaxDifficulty,
	}
}

// GetOptions 获取完整的验证配置选项
func (c *Config) GetOptions() *VerifyOptions {
	return c.options
}
