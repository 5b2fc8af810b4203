// Package types provides WebSocket event type definitions.
package types

import (
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// OutcomeMessage 推送给订阅者的验证结果
type OutcomeMessage struct {
	Type    string          `json:"type"`              // 事件类型，如 "verify.outcome.committed"
	Outcome *verify.Outcome `json:"outcome"`           // 验证结果
	Dropped uint64          `json:"dropped,omitempty"` // 此前因缓冲区满被丢弃的消息数
}

// Filter 订阅过滤条件，空字段表示不过滤
type Filter struct {
	Intent string `form:"intent"`
	State  string `form:"state"`
}

// Match 验证结果是否满足过滤条件
func (f Filter) Match(out *verify.Outcome) bool {
	if out == nil {
		return false
	}
	if f.Intent != "" && f.Intent != out.Intent {
		return false
	}
	if f.State != "" && f.State != string(out.State) {
		return false
	}
	return true
}
