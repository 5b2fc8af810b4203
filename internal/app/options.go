package app

import (
	"github.com/weisyn/blockverify/internal/config"
	"github.com/weisyn/blockverify/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
type options struct {
	// 配置文件路径
	configFilePath string

	// 直接传入的配置（优先级高于 configFilePath）
	appConfig *types.AppConfig

	// API支持开关 (默认启用)
	enableAPI bool
}

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用给定的配置（测试与离线工具使用）
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithoutAPI 禁用API模块
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{enableAPI: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// resolveAppConfig 确定最终配置：显式配置 > 配置文件 > 默认值
func (o *options) resolveAppConfig() (*types.AppConfig, error) {
	if o.appConfig != nil {
		return o.appConfig, nil
	}
	if o.configFilePath == "" {
		return &types.AppConfig{}, nil
	}
	return config.LoadAppConfig(o.configFilePath)
}
