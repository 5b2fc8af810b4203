//go:build getblocktemplate

package request

import "github.com/weisyn/blockverify/pkg/types"

// CheckProposal 完整语义验证（不含 POW）+ 上下文验证，从不提交
type CheckProposal struct{}

// String 返回意图名称
func (CheckProposal) String() string { return NameCheckProposal }

func (CheckProposal) accept(v visitor) { v.visitCheckProposal() }

// proposalVisitor 提案变体的访问方法
type proposalVisitor[T any] interface {
	VisitCheckProposal() T
}

type proposalDispatcher interface {
	visitCheckProposal()
}

func (d *dispatcher[T]) visitCheckProposal() { d.out = d.v.VisitCheckProposal() }

func (f intentFlags) VisitCheckProposal() bool { return f.proposal }

// NewCheckProposal 创建提案检查提交
func NewCheckProposal(block *types.Block) (*Request, error) {
	return New(block, CheckProposal{})
}

// IsProposal 是否为提案检查
func (r *Request) IsProposal() bool {
	return Match[bool](r.intent, intentFlags{proposal: true})
}

// ProposalEnabled 当前构建是否包含提案检查能力
const ProposalEnabled = true

func parseProposalIntent() (Intent, error) {
	return CheckProposal{}, nil
}

// AvailableIntents 返回当前构建支持的全部意图
func AvailableIntents() []Intent {
	return []Intent{Commit{}, CheckProposal{}, ReducedValidation{}}
}
