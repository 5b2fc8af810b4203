// Package writegate 提供写门闸实现
package writegate

import (
	"context"
	"fmt"
	"sync"
	"time"

	wgif "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
)

// gateImpl 是 WriteGate 接口的默认实现
//
// 线程安全：使用 RWMutex 保护内部状态
type gateImpl struct {
	mu sync.RWMutex

	readOnly   bool
	reason     string
	readOnlyAt time.Time
}

// 编译时检查：确保 gateImpl 实现了 WriteGate 接口
var _ wgif.WriteGate = (*gateImpl)(nil)

// New 创建一个新的 WriteGate 实例
func New() wgif.WriteGate {
	return &gateImpl{}
}

// EnterReadOnly 进入只读模式，重复进入时保留第一次的原因
func (g *gateImpl) EnterReadOnly(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.readOnly {
		return
	}
	g.readOnly = true
	g.reason = reason
	g.readOnlyAt = time.Now()
}

// ExitReadOnly 退出只读模式
func (g *gateImpl) ExitReadOnly() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readOnly = false
	g.reason = ""
	g.readOnlyAt = time.Time{}
}

// IsReadOnly 检查是否处于只读模式
func (g *gateImpl) IsReadOnly() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.readOnly
}

// ReadOnlyReason 返回只读模式的原因
func (g *gateImpl) ReadOnlyReason() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reason
}

// AssertWriteAllowed 校验写操作是否允许
func (g *gateImpl) AssertWriteAllowed(ctx context.Context, op string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.readOnly {
		return fmt.Errorf("%w: op=%s reason=%s since=%s", wgif.ErrReadOnly, op, g.reason, g.readOnlyAt.Format(time.RFC3339))
	}
	return nil
}
