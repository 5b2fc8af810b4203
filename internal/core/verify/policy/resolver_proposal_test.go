//go:build getblocktemplate

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
)

// TestResolve_CheckProposal_NeverCommits 测试 CheckProposal 计划
func TestResolve_CheckProposal_NeverCommits(t *testing.T) {
	// Act
	req := newRequest(t, request.CheckProposal{})
	plan := policy.Resolve(req)

	// Assert
	assert.Equal(t, policy.Plan{CheckProofOfWork: false, CommitOnSuccess: false, FullSemanticChecks: true}, plan)
	assert.True(t, req.IsProposal())
}
