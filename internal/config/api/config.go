package api

import (
	"time"

	"github.com/weisyn/blockverify/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	// HTTP API配置
	HTTP HTTPConfig `json:"http"`

	// WebSocket配置
	WebSocket WebSocketConfig `json:"websocket"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务
	Addr    string `json:"addr"`    // 监听地址，如 ":28680"

	// 超时配置
	ReadTimeout  time.Duration `json:"read_timeout"`  // 读取超时时间
	WriteTimeout time.Duration `json:"write_timeout"` // 写入超时时间

	MaxRequestSize int64 `json:"max_request_size"` // 最大请求体(字节)
}

// WebSocketConfig 验证结果推送配置
type WebSocketConfig struct {
	Enabled      bool          `json:"enabled"`       // 是否启用 /v1/ws/outcomes
	WriteTimeout time.Duration `json:"write_timeout"` // 单条消息写超时
	PingInterval time.Duration `json:"ping_interval"` // 心跳间隔
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *types.UserAPIConfig) *Config {
	options := createDefaultAPIOptions()

	if userConfig != nil {
		if userConfig.HTTPEnabled != nil {
			options.HTTP.Enabled = *userConfig.HTTPEnabled
		}
		if userConfig.HTTPAddr != nil && *userConfig.HTTPAddr != "" {
			options.HTTP.Addr = *userConfig.HTTPAddr
		}
	}

	return &Config{options: options}
}

// createDefaultAPIOptions 创建默认API配置
func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:        defaultHTTPEnabled,
			Addr:           defaultHTTPAddr,
			ReadTimeout:    defaultHTTPReadTimeout,
			WriteTimeout:   defaultHTTPWriteTimeout,
			MaxRequestSize: defaultMaxRequestSize,
		},
		WebSocket: WebSocketConfig{
			Enabled:      defaultWebSocketEnabled,
			WriteTimeout: defaultWebSocketWriteTimeout,
			PingInterval: defaultWebSocketPingInterval,
		},
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}

// GetHTTPConfig 获取HTTP配置
func (c *Config) GetHTTPConfig() *HTTPConfig {
	return &c.options.HTTP
}

// GetWebSocketConfig 获取WebSocket配置
func (c *Config) GetWebSocketConfig() *WebSocketConfig {
	return &c.options.WebSocket
}
