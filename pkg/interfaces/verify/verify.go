// Package verify 定义区块验证流水线的协作接口与分发契约
//
// 🎯 **分发契约 (Dispatch Contract)**
//
// 下游服务依赖本包分支行为，而不需要重新推导提交意图：
// - SemanticValidator：上下文无关的语义验证，由策略决定是否完整检查、是否检查 POW
// - ChainState：基于链状态的上下文验证与提交
// - Verifier：驱动单个提交走完整条流水线
//
// 流水线状态：
//
//	Received → SemanticValidating → {Rejected | ContextuallyValidating}
//	         → {Rejected | Committing | Evaluated} → {Committed | Rejected}
//
// 终态为 Rejected、Committed、Evaluated。任何状态都不会被再次进入，流水线不做重试。
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/types"
)

// ============================================================================
//                              协作者接口
// ============================================================================

// SemanticValidator 语义验证器
//
// 只检查区块自身，不读取链状态。fullChecks 为 false 时跳过完整检查，
// checkPoW 为 false 时不检查工作量证明。
type SemanticValidator interface {
	ValidateSemantics(ctx context.Context, block *types.Block, fullChecks, checkPoW bool) error
}

// ContextualValidator 上下文验证器：相对当前链状态检查区块
type ContextualValidator interface {
	ValidateContext(ctx context.Context, block *types.Block) error
}

// Committer 区块提交器
type Committer interface {
	Commit(ctx context.Context, block *types.Block) error
}

// ChainReader 链状态只读查询
type ChainReader interface {
	// Tip 返回当前链尖哈希与高度；链为空时 ok 为 false
	Tip(ctx context.Context) (hash types.Hash, height uint64, ok bool)

	// GetBlock 按哈希读取已提交区块
	GetBlock(ctx context.Context, hash types.Hash) (*types.Block, error)
}

// ChainState 链状态服务
type ChainState interface {
	ContextualValidator
	Committer
	ChainReader
}

// Verifier 驱动单个提交走完流水线
//
// 拒绝时同时返回 Outcome 与 *StageError；上下文取消时返回当前 Outcome 与上下文错误，
// Outcome 停留在取消前的非终态。
type Verifier interface {
	Verify(ctx context.Context, req *request.Request) (*Outcome, error)
}

// ============================================================================
//                              流水线状态
// ============================================================================

// State 提交在流水线中的状态
type State string

const (
	StateReceived               State = "received"
	StateSemanticValidating     State = "semantic_validating"
	StateContextuallyValidating State = "contextually_validating"
	StateCommitting             State = "committing"
	StateCommitted              State = "committed"
	StateEvaluated              State = "evaluated"
	StateRejected               State = "rejected"
)

// IsTerminal 是否为终态
func (s State) IsTerminal() bool {
	switch s {
	case StateCommitted, StateEvaluated, StateRejected:
		return true
	}
	return false
}

// ============================================================================
//                              错误分类
// ============================================================================

// Stage 产生错误的流水线阶段
type Stage string

const (
	StageSemantic   Stage = "semantic"
	StageContextual Stage = "contextual"
	StageCommit     Stage = "commit"
)

// ErrorKind 拒绝类别
type ErrorKind string

const (
	// KindSemanticInvalid 语义验证失败（含 POW 失败）
	KindSemanticInvalid ErrorKind = "semantic_invalid"
	// KindContextuallyInvalid 相对链状态验证失败
	KindContextuallyInvalid ErrorKind = "contextually_invalid"
	// KindCommitFailed 验证通过但提交失败
	KindCommitFailed ErrorKind = "commit_failed"
)

// StageError 带阶段标签的协作者错误
//
// 原始错误保持不变，errors.Is / errors.As 可以穿透到原始错误。
type StageError struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

// Error 实现 error 接口
func (e *StageError) Error() string {
	return fmt.Sprintf("%s阶段失败(%s): %v", e.Stage, e.Kind, e.Err)
}

// Unwrap 返回原始错误
func (e *StageError) Unwrap() error { return e.Err }

// KindOf 提取错误链中的拒绝类别
func KindOf(err error) (ErrorKind, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind, true
	}
	return "", false
}

// ============================================================================
//                              验证结果
// ============================================================================

// Outcome 单个提交的流水线结果
type Outcome struct {
	SubmissionID string        `json:"submission_id"`
	Intent       string        `json:"intent"`
	BlockHash    types.Hash    `json:"block_hash"`
	Height       uint64        `json:"height"`
	Plan         policy.Plan   `json:"plan"`
	State        State         `json:"state"`
	Trace        []State       `json:"trace"`
	Kind         ErrorKind     `json:"kind,omitempty"`
	Error        string        `json:"error,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// Advance 进入下一个状态并记录轨迹
func (o *Outcome) Advance(next State) {
	o.State = next
	o.Trace = append(o.Trace, next)
}

// Result 批量验证中单个提交的结果
type Result struct {
	Outcome *Outcome
	Err     error
}

// ChainTip 链尖变化事件的载荷
type ChainTip struct {
	Hash   types.Hash `json:"hash"`
	Height uint64     `json:"height"`
}
