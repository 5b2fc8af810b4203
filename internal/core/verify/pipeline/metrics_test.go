package pipeline

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/request"
	verifytestutil "github.com/weisyn/blockverify/internal/core/verify/testutil"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// TestRecordOutcome_CountsByIntentStateAndKind 测试结果计数
func TestRecordOutcome_CountsByIntentStateAndKind(t *testing.T) {
	// Arrange
	svc, err := NewService(Dependencies{
		Semantic: &verifytestutil.CountingSemantic{},
		Chain:    &verifytestutil.CountingChain{ContextErr: assert.AnError},
	})
	require.NoError(t, err)
	req, err := request.NewReducedValidation(verifytestutil.Genesis())
	require.NoError(t, err)

	rejected := submissionsTotal.WithLabelValues(request.NameReducedValidation, string(verify.StateRejected))
	byKind := rejectionsTotal.WithLabelValues(request.NameReducedValidation, string(verify.KindContextuallyInvalid))
	beforeRejected := testutil.ToFloat64(rejected)
	beforeKind := testutil.ToFloat64(byKind)

	// Act
	_, err = svc.Verify(context.Background(), req)

	// Assert
	require.Error(t, err)
	assert.Equal(t, beforeRejected+1, testutil.ToFloat64(rejected))
	assert.Equal(t, beforeKind+1, testutil.ToFloat64(byKind))
}

// TestRecordOutcome_Cancelled_UsesCancelledLabel 测试取消的提交计入 cancelled
func TestRecordOutcome_Cancelled_UsesCancelledLabel(t *testing.T) {
	// Arrange
	initPipelineMetrics()
	counter := submissionsTotal.WithLabelValues(request.NameCommit, stateCancelled)
	before := testutil.ToFloat64(counter)

	// Act
	recordOutcome(&verify.Outcome{Intent: request.NameCommit, State: verify.StateSemanticValidating})

	// Assert
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
