package event

import (
	eventconfig "github.com/weisyn/blockverify/internal/config/event"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"

	"go.uber.org/fx"
)

// ServiceInput 事件服务工厂函数的输入参数
type ServiceInput struct {
	Provider  config.Provider // 配置提供者
	Logger    log.Logger      // 日志记录器（可选）
	Lifecycle fx.Lifecycle    // 生命周期管理（可选）
}

// ServiceOutput 事件服务工厂函数的输出结果
type ServiceOutput struct {
	EventBus *EventBus
}

// CreateEventServices 创建事件服务
func CreateEventServices(input ServiceInput) (ServiceOutput, error) {
	eventCfg := eventconfig.NewFromOptions(input.Provider.GetEvent())
	eventBus := New(eventCfg)

	if input.Lifecycle != nil {
		input.Lifecycle.Append(fx.Hook{OnStop: eventBus.Stop})
	}

	if input.Logger != nil {
		input.Logger.Infof("事件总线已初始化: enabled=%t", eventCfg.IsEnabled())
	}

	return ServiceOutput{EventBus: eventBus}, nil
}
