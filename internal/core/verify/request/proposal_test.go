//go:build getblocktemplate

package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/request"
)

func (nameVisitor) VisitCheckProposal() string { return "P" }

// TestPredicates_CheckProposal_OnlyProposalTrue 测试 CheckProposal 的谓词
func TestPredicates_CheckProposal_OnlyProposalTrue(t *testing.T) {
	// Arrange
	block := newBlock(2)

	// Act
	req, err := request.NewCheckProposal(block)
	require.NoError(t, err)

	// Assert
	assert.True(t, req.IsProposal())
	assert.False(t, req.IsReducedValidation())
	assert.Same(t, block, req.Block())
}

// TestParseIntent_CheckProposal_Available 测试启用构建中的提案意图解析
func TestParseIntent_CheckProposal_Available(t *testing.T) {
	// Act
	intent, err := request.ParseIntent("check_proposal")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, request.CheckProposal{}, intent)
	assert.True(t, request.ProposalEnabled)
	assert.Len(t, request.AvailableIntents(), 3)
}

// TestMatch_AllIntents_DispatchesToVariantMethod 测试访问者分派
func TestMatch_AllIntents_DispatchesToVariantMethod(t *testing.T) {
	assert.Equal(t, "C", request.Match[string](request.Commit{}, nameVisitor{}))
	assert.Equal(t, "P", request.Match[string](request.CheckProposal{}, nameVisitor{}))
	assert.Equal(t, "R", request.Match[string](request.ReducedValidation{}, nameVisitor{}))
}
