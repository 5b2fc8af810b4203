package clock

import (
	"os"
	"strconv"
	"time"

	configtypes "github.com/weisyn/blockverify/pkg/types"
)

// ClockOptions 时钟配置
type ClockOptions struct {
	Type         string        `json:"type"` // system | ntp
	NTPServer    string        `json:"ntp_server"`
	SyncInterval time.Duration `json:"sync_interval"`
	QueryTimeout time.Duration `json:"query_timeout"` // 单次 NTP 查询超时
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建配置：默认值 → 用户配置 → 环境变量
//
// 环境变量：
//
//	CLOCK_TYPE (system|ntp)
//	CLOCK_NTP_SERVER (如 time.google.com)
//	CLOCK_SYNC_INTERVAL_MS
func New(userConfig *configtypes.UserClockConfig) *Config {
	opts := &ClockOptions{
		Type:         defaultType,
		NTPServer:    defaultNTPServer,
		SyncInterval: defaultSyncInterval,
		QueryTimeout: defaultQueryTimeout,
	}

	if userConfig != nil {
		if userConfig.Type != nil {
			opts.Type = *userConfig.Type
		}
		if userConfig.NTPServer != nil {
			opts.NTPServer = *userConfig.NTPServer
		}
		if userConfig.SyncIntervalMs != nil && *userConfig.SyncIntervalMs > 0 {
			opts.SyncInterval = time.Duration(*userConfig.SyncIntervalMs) * time.Millisecond
		}
	}

	if v := os.Getenv("CLOCK_TYPE"); v != "" {
		opts.Type = v
	}
	if v := os.Getenv("CLOCK_NTP_SERVER"); v != "" {
		opts.NTPServer = v
	}
	if v := os.Getenv("CLOCK_SYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			opts.SyncInterval = time.Duration(n) * time.Millisecond
		}
	}

	return &Config{options: opts}
}

func (c *Config) GetOptions() *ClockOptions { return c.options }
