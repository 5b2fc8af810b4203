package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/types"
)

func newRequest(t *testing.T, intent request.Intent) *request.Request {
	t.Helper()
	req, err := request.New(&types.Block{Header: &types.BlockHeader{Height: 1}}, intent)
	require.NoError(t, err)
	return req
}

// TestResolve_Commit_FullPlan 测试 Commit 计划
func TestResolve_Commit_FullPlan(t *testing.T) {
	// Act
	plan := policy.Resolve(newRequest(t, request.Commit{}))

	// Assert
	assert.Equal(t, policy.Plan{CheckProofOfWork: true, CommitOnSuccess: true, FullSemanticChecks: true}, plan)
}

// TestResolve_ReducedValidation_CommitsWithoutPoW 测试 ReducedValidation 计划
func TestResolve_ReducedValidation_CommitsWithoutPoW(t *testing.T) {
	// Act
	req := newRequest(t, request.ReducedValidation{})
	plan := policy.Resolve(req)

	// Assert
	assert.Equal(t, policy.Plan{CheckProofOfWork: false, CommitOnSuccess: true, FullSemanticChecks: false}, plan)
	assert.True(t, policy.ShouldCommit(req))
	assert.False(t, policy.ShouldCheckProofOfWork(req))
	assert.False(t, policy.ShouldRunFullSemanticChecks(req))
}

// TestResolve_RepeatedCalls_Idempotent 测试重复解析结果一致
func TestResolve_RepeatedCalls_Idempotent(t *testing.T) {
	for _, intent := range request.AvailableIntents() {
		// Arrange
		req := newRequest(t, intent)

		// Act
		first := policy.Resolve(req)
		second := policy.Resolve(req)

		// Assert
		assert.Equal(t, first, second, intent.String())
		assert.Equal(t, first, policy.ForIntent(intent), intent.String())
	}
}

// TestResolve_AllIntents_PoWOnlyForCommit 测试只有 Commit 检查 POW
func TestResolve_AllIntents_PoWOnlyForCommit(t *testing.T) {
	for _, intent := range request.AvailableIntents() {
		req := newRequest(t, intent)
		_, isCommit := intent.(request.Commit)
		assert.Equal(t, isCommit, policy.ShouldCheckProofOfWork(req), intent.String())
	}
}

// TestPlan_String_ContainsFlags 测试计划描述
func TestPlan_String_ContainsFlags(t *testing.T) {
	plan := policy.ForIntent(request.Commit{})
	assert.Equal(t, "Plan{pow=true, commit=true, full=true}", plan.String())
}
