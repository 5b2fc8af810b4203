package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/weisyn/blockverify/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidationErrors 多个验证错误
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	msg := "配置验证失败，发现以下问题：\n"
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap 返回全部验证错误
func (e *ValidationErrors) Unwrap() []error { return e.Errors }

// ValidateAppConfig 在启动时检查用户配置，只检查配置文件中出现的字段
//
// 所有问题一次性收集后返回，nil 配置视为合法。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}

	var errs []error
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if appConfig.Environment != nil {
		switch strings.ToLower(strings.TrimSpace(*appConfig.Environment)) {
		case "dev", "test", "prod":
		default:
			add("environment", "无效的运行环境 %q，可选值 dev|test|prod", *appConfig.Environment)
		}
	}

	if appConfig.Log != nil && appConfig.Log.Level != nil {
		if _, ok := types.ParseLogLevel(*appConfig.Log.Level); !ok {
			add("log.level", "无效的日志级别 %q", *appConfig.Log.Level)
		}
	}

	if appConfig.Clock != nil {
		if appConfig.Clock.Type != nil && *appConfig.Clock.Type != "system" && *appConfig.Clock.Type != "ntp" {
			add("clock.type", "无效的时钟类型 %q，可选值 system|ntp", *appConfig.Clock.Type)
		}
		if appConfig.Clock.SyncIntervalMs != nil && *appConfig.Clock.SyncIntervalMs <= 0 {
			add("clock.sync_interval_ms", "同步间隔必须 > 0")
		}
	}

	if appConfig.Storage != nil && appConfig.Storage.Memory != nil {
		mem := appConfig.Storage.Memory
		for field, value := range map[string]*string{
			"storage.memory.life_window":  mem.LifeWindow,
			"storage.memory.clean_window": mem.CleanWindow,
		} {
			if value == nil {
				continue
			}
			if d, err := time.ParseDuration(*value); err != nil || d <= 0 {
				add(field, "时长格式无效: %q（期望类似 \"10m\"）", *value)
			}
		}
	}

	if v := appConfig.Verify; v != nil {
		if v.MaxConcurrency != nil && *v.MaxConcurrency < 1 {
			add("verify.max_concurrency", "并发上限必须 >= 1")
		}
		if v.MaxBlockVersion != nil && *v.MaxBlockVersion == 0 {
			add("verify.max_block_version", "最高区块版本必须 > 0")
		}
		if v.MaxBlockTransactions != nil && *v.MaxBlockTransactions < 1 {
			add("verify.max_block_transactions", "单区块交易数上限必须 >= 1")
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
