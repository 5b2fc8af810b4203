package writegate

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	wgif "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
)

// ModuleInput 定义 WriteGate 模块的输入依赖
type ModuleInput struct {
	fx.In

	Logger    log.Logger `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle
}

// ModuleOutput 定义 WriteGate 模块的输出服务
type ModuleOutput struct {
	fx.Out

	WriteGate wgif.WriteGate
}

// Module 返回 WriteGate 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("writegate",
		fx.Provide(ProvideWriteGate),
	)
}

// ProvideWriteGate 提供 WriteGate 实例
//
// 应用停止时门闸先进入只读模式，存储随后关闭，关闭期间到达的提交会被拒绝。
func ProvideWriteGate(input ModuleInput) ModuleOutput {
	gate := New()

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			gate.EnterReadOnly("应用正在关闭")
			if input.Logger != nil {
				input.Logger.Info("WriteGate 已进入只读模式（应用关闭）")
			}
			return nil
		},
	})

	return ModuleOutput{WriteGate: gate}
}
