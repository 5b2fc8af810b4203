// Package metrics 提供模块内存指标导出
//
// 📋 **内存监控基础设施模块 (Memory Metrics Infrastructure Module)**
//
// 各业务模块实现 MemoryReporter 并注册到 pkg/utils/metrics，
// 本模块把注册表的内容以 Prometheus 指标的形式暴露给 /metrics。
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
)

// ModuleInput 定义 metrics 模块的输入依赖
type ModuleInput struct {
	fx.In

	Logger     log.Logger            `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"` // 为空时使用默认注册表
}

// Module 返回 metrics 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Invoke(RegisterModuleCollector),
	)
}

// RegisterModuleCollector 注册模块内存收集器，重复注册视为成功
func RegisterModuleCollector(input ModuleInput) error {
	registerer := input.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	if err := registerer.Register(NewModuleCollector()); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return err
		}
	}

	if input.Logger != nil {
		input.Logger.With("module", "metrics").Info("模块内存指标收集器已注册")
	}
	return nil
}
