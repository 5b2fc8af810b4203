//go:build getblocktemplate

package policy

// 提案只做评估，从不提交
func (resolver) VisitCheckProposal() Plan {
	return Plan{CheckProofOfWork: false, CommitOnSuccess: false, FullSemanticChecks: true}
}
