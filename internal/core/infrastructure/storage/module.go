// Package storage 提供存储管理功能
package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器
	Lifecycle fx.Lifecycle
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore // BadgerDB存储（必需，失败即错误）
	MemoryStore storageInterface.MemoryStore `optional:"true"` // 内存存储（可选）
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 提供存储服务，并注册关闭钩子
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	serviceOutput, err := CreateStorageServices(ServiceInput{
		Provider: params.Provider,
		Logger:   params.Logger,
	})
	if err != nil {
		return ModuleOutput{}, err
	}

	output := ModuleOutput{BadgerStore: serviceOutput.BadgerStore}
	if serviceOutput.MemoryStore != nil {
		output.MemoryStore = serviceOutput.MemoryStore
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if serviceOutput.MemoryStore != nil {
				if err := serviceOutput.MemoryStore.Close(); err != nil && params.Logger != nil {
					params.Logger.Errorf("关闭内存存储失败: %v", err)
				}
			}
			return serviceOutput.BadgerStore.Close()
		},
	})

	return output, nil
}
