package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIntentUnavailable 意图名称合法，但对应能力未编译进当前构建
var ErrIntentUnavailable = errors.New("意图在当前构建中不可用")

// ErrUnknownIntent 未知的意图名称
var ErrUnknownIntent = errors.New("未知的意图")

// 意图名称（传输层使用）
const (
	NameCommit            = "commit"
	NameCheckProposal     = "check_proposal"
	NameReducedValidation = "reduced_validation"

	// NameTinyCash ReducedValidation 的历史别名
	NameTinyCash = "tinycash"
)

// Intent 提交意图
//
// 封闭的变体集合：只有本包内的类型能实现该接口。
// 对意图的分支一律通过 Match 与 Visitor 完成，新增变体会让所有访问者编译失败。
type Intent interface {
	fmt.Stringer

	accept(v visitor)
}

// Commit 完整语义验证（含 POW）+ 上下文验证，成功后提交
type Commit struct{}

// String 返回意图名称
func (Commit) String() string { return NameCommit }

func (Commit) accept(v visitor) { v.visitCommit() }

// ReducedValidation 不含 POW 的部分语义验证 + 上下文验证，成功后提交
type ReducedValidation struct{}

// String 返回意图名称
func (ReducedValidation) String() string { return NameReducedValidation }

func (ReducedValidation) accept(v visitor) { v.visitReducedValidation() }

// ParseIntent 按名称解析意图，名称不区分大小写
//
// check_proposal 在未启用 getblocktemplate 的构建中返回 ErrIntentUnavailable。
func ParseIntent(name string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameCommit:
		return Commit{}, nil
	case NameReducedValidation, NameTinyCash:
		return ReducedValidation{}, nil
	case NameCheckProposal:
		return parseProposalIntent()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}
