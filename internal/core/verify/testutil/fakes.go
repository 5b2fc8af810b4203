package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// SemanticCall 记录一次语义验证调用
type SemanticCall struct {
	Block      *types.Block
	FullChecks bool
	CheckPoW   bool
}

// CountingSemantic 记录调用的语义验证器替身
//
// Inner 不为空时委托给 Inner，否则返回 Err。
type CountingSemantic struct {
	Inner verifyiface.SemanticValidator
	Err   error

	mu    sync.Mutex
	calls []SemanticCall
}

var _ verifyiface.SemanticValidator = (*CountingSemantic)(nil)

// ValidateSemantics 实现 SemanticValidator
func (s *CountingSemantic) ValidateSemantics(ctx context.Context, block *types.Block, fullChecks, checkPoW bool) error {
	s.mu.Lock()
	s.calls = append(s.calls, SemanticCall{Block: block, FullChecks: fullChecks, CheckPoW: checkPoW})
	s.mu.Unlock()

	if s.Inner != nil {
		return s.Inner.ValidateSemantics(ctx, block, fullChecks, checkPoW)
	}
	return s.Err
}

// Calls 返回调用记录副本
func (s *CountingSemantic) Calls() []SemanticCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SemanticCall(nil), s.calls...)
}

// CountingChain 记录调用次数的链状态替身
//
// Inner 不为空时委托给 Inner；否则 ValidateContext 返回 ContextErr，Commit 返回 CommitErr。
type CountingChain struct {
	Inner      verifyiface.ChainState
	ContextErr error
	CommitErr  error

	contextCalls atomic.Int64
	commitCalls  atomic.Int64

	mu        sync.Mutex
	committed []*types.Block
}

var _ verifyiface.ChainState = (*CountingChain)(nil)

// ValidateContext 实现 ContextualValidator
func (c *CountingChain) ValidateContext(ctx context.Context, block *types.Block) error {
	c.contextCalls.Add(1)
	if c.Inner != nil {
		return c.Inner.ValidateContext(ctx, block)
	}
	return c.ContextErr
}

// Commit 实现 Committer
func (c *CountingChain) Commit(ctx context.Context, block *types.Block) error {
	c.commitCalls.Add(1)
	var err error
	if c.Inner != nil {
		err = c.Inner.Commit(ctx, block)
	} else {
		err = c.CommitErr
	}
	if err == nil {
		c.mu.Lock()
		c.committed = append(c.committed, block)
		c.mu.Unlock()
	}
	return err
}

// Tip 实现 ChainReader
func (c *CountingChain) Tip(ctx context.Context) (types.Hash, uint64, bool) {
	if c.Inner != nil {
		return c.Inner.Tip(ctx)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.committed) == 0 {
		return types.Hash{}, 0, false
	}
	last := c.committed[len(c.committed)-1]
	return last.Hash(), last.Height(), true
}

// GetBlock 实现 ChainReader
func (c *CountingChain) GetBlock(ctx context.Context, hash types.Hash) (*types.Block, error) {
	if c.Inner != nil {
		return c.Inner.GetBlock(ctx, hash)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.committed {
		if b.Hash() == hash {
			return b, nil
		}
	}
	return nil, nil
}

// ContextCalls ValidateContext 调用次数
func (c *CountingChain) ContextCalls() int { return int(c.contextCalls.Load()) }

// CommitCalls Commit 调用次数
func (c *CountingChain) CommitCalls() int { return int(c.commitCalls.Load()) }

// Committed 成功提交的区块
func (c *CountingChain) Committed() []*types.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Block(nil), c.committed...)
}
