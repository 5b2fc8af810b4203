// 基于asaskevich/EventBus的事件总线实现

package event

import (
	"context"
	"sync/atomic"

	evbus "github.com/asaskevich/EventBus"
	eventconfig "github.com/weisyn/blockverify/internal/config/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
)

// EventBus 是基于asaskevich/EventBus的实现
//
// 事件系统未启用时所有操作静默成功，发布的事件被丢弃。
type EventBus struct {
	bus    evbus.Bus           // 底层事件总线
	config *eventconfig.Config // 配置

	published atomic.Uint64 // 已发布事件数
}

var _ event.EventBus = (*EventBus)(nil)

// New 创建事件总线实例
func New(config *eventconfig.Config) *EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:    evbus.New(),
		config: config,
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil // 如果事件系统未启用，静默成功
	}
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	eb.published.Add(1)
	eb.bus.Publish(string(eventType), args...)
}

// PublishEvent 发布Event接口类型事件
func (eb *EventBus) PublishEvent(e event.Event) {
	if e == nil {
		return
	}
	eb.Publish(e.Type(), e.Data())
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.WaitAsync()
}

// HasCallback 检查是否有回调
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// PublishedCount 返回已发布事件数
func (eb *EventBus) PublishedCount() uint64 {
	return eb.published.Load()
}

// Stop 等待在途的异步处理完成
func (eb *EventBus) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		eb.WaitAsync()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// basicEvent Event 接口的简单实现
type basicEvent struct {
	eventType event.EventType
	data      interface{}
}

// NewEvent 创建事件
func NewEvent(eventType event.EventType, data interface{}) event.Event {
	return &basicEvent{eventType: eventType, data: data}
}

func (e *basicEvent) Type() event.EventType { return e.eventType }
func (e *basicEvent) Data() interface{}     { return e.data }
