// Package writegate 提供写门闸接口，用于控制链状态写操作。
//
// 只读模式用于不可恢复的故障保护：持久化失败后链状态的内存索引
// 可能与磁盘不一致，此时禁止继续提交，直到进程重启重新加载。
// 应用关闭时也会进入只读模式，阻止关闭过程中的新提交。
package writegate

import (
	"context"
	"errors"
)

// ErrReadOnly 写操作被只读模式阻止
var ErrReadOnly = errors.New("write blocked (read-only)")

// WriteGate 写门闸接口
//
// 使用示例：
//
//	if err := gate.AssertWriteAllowed(ctx, "chainstate.commit"); err != nil {
//	    return err
//	}
//	// 执行写操作...
type WriteGate interface {
	// EnterReadOnly 进入只读模式，禁止所有写操作
	EnterReadOnly(reason string)

	// ExitReadOnly 退出只读模式，恢复正常写操作
	ExitReadOnly()

	// IsReadOnly 检查当前是否处于只读模式
	IsReadOnly() bool

	// ReadOnlyReason 返回进入只读模式的原因，不在只读模式时为空
	ReadOnlyReason() string

	// AssertWriteAllowed 校验写操作是否允许
	//
	// 只读模式下返回包装了 ErrReadOnly 的错误，错误信息包含 op 与原因。
	AssertWriteAllowed(ctx context.Context, op string) error
}
