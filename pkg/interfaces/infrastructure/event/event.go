// Package event 提供事件总线接口定义
//
// 🎯 **事件总线 (Event Bus)**
//
// 验证流水线在每个提交请求到达终态时发布事件，
// HTTP 层的 websocket 推送与其他观察者通过订阅获取结果。
package event

// EventType 事件类型
type EventType string

// Event 事件接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Data 返回事件数据
	Data() interface{}
}

// EventBus 事件总线接口
type EventBus interface {
	// Subscribe 同步订阅事件
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// PublishEvent 发布Event接口类型事件
	PublishEvent(event Event)
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 检查是否有回调函数
	HasCallback(eventType EventType) bool
}

// ==================== 验证流水线事件 ====================

const (
	// EventTypeSubmissionCommitted 提交请求验证通过且区块已写入链状态
	EventTypeSubmissionCommitted EventType = "verify.outcome.committed"
	// EventTypeSubmissionEvaluated 提案检查请求验证通过（未写入链状态）
	EventTypeSubmissionEvaluated EventType = "verify.outcome.evaluated"
	// EventTypeSubmissionRejected 提交请求被拒绝
	EventTypeSubmissionRejected EventType = "verify.outcome.rejected"
	// EventTypeChainTipChanged 链尖变化（由链状态服务发布）
	EventTypeChainTipChanged EventType = "chain.tip.changed"
)

// OutcomeEventTypes 流水线终态事件类型列表
var OutcomeEventTypes = []EventType{
	EventTypeSubmissionCommitted,
	EventTypeSubmissionEvaluated,
	EventTypeSubmissionRejected,
}
