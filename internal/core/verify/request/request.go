// Package request 定义区块验证提交（Submission）
//
// 一个提交由候选区块与调用方意图组成，构造后不可变，可在 goroutine 间自由共享。
// 意图决定验证策略（见 policy 包），访问器不会复制区块：Block() 总是返回构造时传入的指针。
package request

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/weisyn/blockverify/pkg/types"
)

// ErrNilBlock 区块为空
var ErrNilBlock = errors.New("区块不能为空")

// ErrNilIntent 意图为空
var ErrNilIntent = errors.New("意图不能为空")

// Request 区块验证提交
type Request struct {
	id     string
	block  *types.Block
	intent Intent
}

// New 创建提交，每个提交分配一个唯一 ID 用于日志与事件关联
func New(block *types.Block, intent Intent) (*Request, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	if isNilIntent(intent) {
		return nil, ErrNilIntent
	}
	return &Request{
		id:     uuid.NewString(),
		block:  block,
		intent: intent,
	}, nil
}

// isNilIntent 意图为 nil 或为值为 nil 的指针变体（如 (*Commit)(nil)）
func isNilIntent(intent Intent) bool {
	if intent == nil {
		return true
	}
	v := reflect.ValueOf(intent)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// NewCommit 创建提交意图的提交
func NewCommit(block *types.Block) (*Request, error) {
	return New(block, Commit{})
}

// NewReducedValidation 创建精简验证意图的提交
func NewReducedValidation(block *types.Block) (*Request, error) {
	return New(block, ReducedValidation{})
}

// Block 返回构造时传入的区块指针
func (r *Request) Block() *types.Block { return r.block }

// Intent 返回提交意图
func (r *Request) Intent() Intent { return r.intent }

// ID 返回提交 ID
func (r *Request) ID() string { return r.id }

// IsReducedValidation 是否为精简验证
func (r *Request) IsReducedValidation() bool {
	return Match[bool](r.intent, intentFlags{reduced: true})
}

// String 返回便于日志输出的描述
func (r *Request) String() string {
	return fmt.Sprintf("Submission{id=%s, intent=%s, height=%d}", r.id, r.intent, r.block.Height())
}

// intentFlags 对命中的变体返回 true
type intentFlags struct {
	commit   bool
	reduced  bool
	proposal bool
}

func (f intentFlags) VisitCommit() bool { return f.commit }

func (f intentFlags) VisitReducedValidation() bool { return f.reduced }
