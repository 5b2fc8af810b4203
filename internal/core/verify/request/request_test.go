package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/types"
)

func newBlock(height uint64) *types.Block {
	return &types.Block{
		Header:       &types.BlockHeader{Version: 1, Height: height},
		Transactions: []*types.Transaction{{Outputs: []types.Output{{Value: 50}}}},
	}
}

// TestNew_NilBlock_ReturnsError 测试空区块构造失败
func TestNew_NilBlock_ReturnsError(t *testing.T) {
	// Act
	req, err := request.New(nil, request.Commit{})

	// Assert
	assert.Nil(t, req)
	assert.ErrorIs(t, err, request.ErrNilBlock)
}

// TestNew_NilIntent_ReturnsError 测试空意图构造失败
func TestNew_NilIntent_ReturnsError(t *testing.T) {
	// Act
	req, err := request.New(newBlock(1), nil)

	// Assert
	assert.Nil(t, req)
	assert.ErrorIs(t, err, request.ErrNilIntent)
}

// TestNew_TypedNilIntent_ReturnsError 值为 nil 的指针变体视为空意图
func TestNew_TypedNilIntent_ReturnsError(t *testing.T) {
	tests := []struct {
		name   string
		intent request.Intent
	}{
		{"commit", (*request.Commit)(nil)},
		{"reduced validation", (*request.ReducedValidation)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			req, err := request.New(newBlock(0), tt.intent)

			// Assert
			assert.Nil(t, req)
			assert.ErrorIs(t, err, request.ErrNilIntent)
		})
	}
}

// TestNew_PointerIntent_BehavesLikeValue 非空指针变体与值变体行为一致
func TestNew_PointerIntent_BehavesLikeValue(t *testing.T) {
	// Act
	req, err := request.New(newBlock(0), &request.ReducedValidation{})

	// Assert
	require.NoError(t, err)
	assert.True(t, req.IsReducedValidation())
	assert.False(t, req.IsProposal())
}

// TestBlock_AllIntents_ReturnsSamePointer 测试 Block() 对所有意图返回同一指针
func TestBlock_AllIntents_ReturnsSamePointer(t *testing.T) {
	for _, intent := range request.AvailableIntents() {
		t.Run(intent.String(), func(t *testing.T) {
			// Arrange
			block := newBlock(3)

			// Act
			req, err := request.New(block, intent)
			require.NoError(t, err)

			// Assert
			assert.Same(t, block, req.Block())
			assert.Same(t, req.Block(), req.Block())
		})
	}
}

// TestPredicates_Commit_AllFalse 测试 Commit 的谓词
func TestPredicates_Commit_AllFalse(t *testing.T) {
	// Arrange
	req, err := request.NewCommit(newBlock(1))
	require.NoError(t, err)

	// Assert
	assert.False(t, req.IsProposal())
	assert.False(t, req.IsReducedValidation())
	assert.Equal(t, request.Commit{}, req.Intent())
}

// TestPredicates_ReducedValidation_OnlyReducedTrue 测试 ReducedValidation 的谓词
func TestPredicates_ReducedValidation_OnlyReducedTrue(t *testing.T) {
	// Arrange
	req, err := request.NewReducedValidation(newBlock(1))
	require.NoError(t, err)

	// Assert
	assert.False(t, req.IsProposal())
	assert.True(t, req.IsReducedValidation())
}

// TestID_TwoSubmissions_AreDistinct 测试每个提交拥有唯一 ID
func TestID_TwoSubmissions_AreDistinct(t *testing.T) {
	// Arrange
	block := newBlock(1)
	a, err := request.NewCommit(block)
	require.NoError(t, err)
	b, err := request.NewCommit(block)
	require.NoError(t, err)

	// Assert
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.String(), "intent=commit")
	assert.Contains(t, a.String(), "height=1")
}

// TestParseIntent_KnownNames_ReturnsIntent 测试意图名称解析
func TestParseIntent_KnownNames_ReturnsIntent(t *testing.T) {
	cases := map[string]request.Intent{
		"commit":             request.Commit{},
		"COMMIT":             request.Commit{},
		"reduced_validation": request.ReducedValidation{},
		"tinycash":           request.ReducedValidation{},
		" TinyCash ":         request.ReducedValidation{},
	}
	for name, want := range cases {
		// Act
		got, err := request.ParseIntent(name)

		// Assert
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

// TestParseIntent_UnknownName_ReturnsError 测试未知名称
func TestParseIntent_UnknownName_ReturnsError(t *testing.T) {
	// Act
	_, err := request.ParseIntent("reorg")

	// Assert
	assert.ErrorIs(t, err, request.ErrUnknownIntent)
}

type nameVisitor struct{}

func (nameVisitor) VisitCommit() string            { return "C" }
func (nameVisitor) VisitReducedValidation() string { return "R" }
