//go:build !getblocktemplate

package request

import "fmt"

type proposalVisitor[T any] interface{}

type proposalDispatcher interface{}

// IsProposal 未启用 getblocktemplate 时恒为 false
func (r *Request) IsProposal() bool {
	return false
}

// ProposalEnabled 当前构建是否包含提案检查能力
const ProposalEnabled = false

func parseProposalIntent() (Intent, error) {
	return nil, fmt.Errorf("%w: %s（需要 getblocktemplate 构建标签）", ErrIntentUnavailable, NameCheckProposal)
}

// AvailableIntents 返回当前构建支持的全部意图
func AvailableIntents() []Intent {
	return []Intent{Commit{}, ReducedValidation{}}
}
