package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/weisyn/blockverify/internal/config/api"
	"github.com/weisyn/blockverify/internal/config/clock"
	"github.com/weisyn/blockverify/internal/config/event"
	"github.com/weisyn/blockverify/internal/config/log"
	"github.com/weisyn/blockverify/internal/config/storage/badger"
	"github.com/weisyn/blockverify/internal/config/storage/memory"
	"github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/types"
)

const (
	defaultAppName     = "blockverify"
	defaultDataDir     = "./data"
	defaultEnvironment = "prod"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者，appConfig 为 nil 时全部使用默认值
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{appConfig: appConfig}
}

// LoadAppConfig 从 JSON 文件加载应用配置
func LoadAppConfig(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}

	if err := ValidateAppConfig(&appConfig); err != nil {
		return nil, err
	}
	return &appConfig, nil
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetClock 获取时钟配置
func (p *Provider) GetClock() *clock.ClockOptions {
	return clock.New(p.appConfig.Clock).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *event.EventOptions {
	return event.New(p.appConfig.Event).GetOptions()
}

// GetBadger 获取 BadgerDB 存储配置
func (p *Provider) GetBadger() *badger.BadgerOptions {
	var userBadgerConfig *types.UserBadgerConfig
	if p.appConfig.Storage != nil {
		userBadgerConfig = p.appConfig.Storage.Badger
	}
	return badger.New(userBadgerConfig, p.GetDataDir()).GetOptions()
}

// GetMemory 获取内存缓存配置
func (p *Provider) GetMemory() *memory.MemoryOptions {
	var userMemoryConfig *types.UserMemoryConfig
	if p.appConfig.Storage != nil {
		userMemoryConfig = p.appConfig.Storage.Memory
	}
	return memory.New(userMemoryConfig).GetOptions()
}

// GetVerify 获取区块验证配置
func (p *Provider) GetVerify() *verify.VerifyOptions {
	return verify.New(p.appConfig.Verify).GetOptions()
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// GetEnvironment 获取运行环境，未配置或无效时为 prod
func (p *Provider) GetEnvironment() string {
	if p.appConfig.Environment == nil {
		return defaultEnvironment
	}
	switch env := strings.ToLower(strings.TrimSpace(*p.appConfig.Environment)); env {
	case "dev", "test", "prod":
		return env
	}
	return defaultEnvironment
}

// GetDataDir 获取数据根目录
func (p *Provider) GetDataDir() string {
	if p.appConfig.DataDir != nil && *p.appConfig.DataDir != "" {
		return *p.appConfig.DataDir
	}
	return defaultDataDir
}
