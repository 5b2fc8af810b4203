//go:build getblocktemplate

package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/testutil"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// TestSubmitProposal_ValidBlock_EvaluatedWithoutCommit 提案检查不改变链尖
func TestSubmitProposal_ValidBlock_EvaluatedWithoutCommit(t *testing.T) {
	// Arrange
	h := newAPIHarness(t, true)
	block := testutil.NextBlock(h.genesis, testutil.WithBadProofOfWork())

	// Act
	rec := h.do(t, http.MethodPost, "/v1/blocks/proposal", block)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeOutcome(t, rec)
	assert.Equal(t, verify.StateEvaluated, out.State)
	assert.Equal(t, "check_proposal", out.Intent)

	hash, height, ok := h.chain.Tip(context.Background())
	require.True(t, ok)
	assert.Equal(t, h.genesis.Hash(), hash)
	assert.Equal(t, uint64(0), height)
}
