// Package config 提供应用配置管理功能
package config

import (
	"github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/types"
	"go.uber.org/fx"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置（由命令行加载，可选）
	AppConfig *types.AppConfig `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			func(provider config.Provider) *verify.VerifyOptions {
				return provider.GetVerify()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	if err := ValidateAppConfig(params.AppConfig); err != nil {
		return ConfigOutput{}, err
	}
	return ConfigOutput{
		Provider: NewProvider(params.AppConfig),
	}, nil
}
