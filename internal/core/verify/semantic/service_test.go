package semantic_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryconfig "github.com/weisyn/blockverify/internal/config/storage/memory"
	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/internal/core/infrastructure/clock"
	"github.com/weisyn/blockverify/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/blockverify/internal/core/verify/semantic"
	"github.com/weisyn/blockverify/internal/core/verify/testutil"
	"github.com/weisyn/blockverify/pkg/types"
)

type fixture struct {
	svc   *semantic.Service
	clock *clock.MockClock
	cache *memory.Store
}

func newFixture(t *testing.T, mutate func(*verifyconfig.VerifyOptions)) *fixture {
	t.Helper()
	c := testutil.NewCrypto()
	mc := clock.NewMockClock(testutil.Now())
	cache, err := memory.New(memoryconfig.New(nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	opts := verifyconfig.DefaultOptions()
	if mutate != nil {
		mutate(opts)
	}

	svc, err := semantic.NewService(semantic.Dependencies{
		BlockHasher: c.BlockHash,
		Merkle:      c.Merkle,
		POW:         c.POW,
		Clock:       mc,
		Cache:       cache,
		Options:     opts,
	})
	require.NoError(t, err)
	return &fixture{svc: svc, clock: mc, cache: cache}
}

// TestService_ValidBlock_PassesAllModes 测试合法区块在所有模式下通过
func TestService_ValidBlock_PassesAllModes(t *testing.T) {
	f := newFixture(t, nil)
	genesis := testutil.Genesis()
	block := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Spend(genesis.Transactions[0], 0, 10)))

	for _, mode := range []struct{ full, pow bool }{{true, true}, {true, false}, {false, false}, {false, true}} {
		assert.NoError(t, f.svc.ValidateSemantics(context.Background(), block, mode.full, mode.pow), "full=%t pow=%t", mode.full, mode.pow)
	}
}

// TestService_BadProofOfWork_OnlyFailsWhenChecked 测试POW只在要求时检查
func TestService_BadProofOfWork_OnlyFailsWhenChecked(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	block := testutil.NextBlock(testutil.Genesis(), testutil.WithBadProofOfWork())

	// Act
	withPoW := f.svc.ValidateSemantics(context.Background(), block, true, true)
	withoutPoW := f.svc.ValidateSemantics(context.Background(), block, true, false)

	// Assert
	assert.ErrorIs(t, withPoW, semantic.ErrProofOfWork)
	assert.NoError(t, withoutPoW)
}

// TestService_StructuralFailures 测试结构与 Merkle 检查
func TestService_StructuralFailures(t *testing.T) {
	genesis := testutil.Genesis()
	cb := genesis.Transactions[0]

	noCoinbase := testutil.NextBlock(genesis)
	noCoinbase.Transactions = []*types.Transaction{testutil.Spend(cb, 0, 1)}

	extraCoinbase := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Coinbase(9, nil, 1)))

	dupInput := testutil.NextBlock(genesis, testutil.WithTransactions(
		testutil.Spend(cb, 0, 1),
		testutil.Spend(cb, 0, 2),
	))

	noOutputs := testutil.NextBlock(genesis, testutil.WithTransactions(&types.Transaction{
		Version: 1,
		Inputs:  []types.OutPoint{{TxHash: cb.Hash(), Index: 0}},
	}))

	testCases := []struct {
		name    string
		block   *types.Block
		wantErr error
	}{
		{"区块为空", nil, semantic.ErrNilBlock},
		{"区块头为空", &types.Block{}, semantic.ErrNilHeader},
		{"没有交易", &types.Block{Header: &types.BlockHeader{Version: 1}}, semantic.ErrNoTransactions},
		{"版本不支持", testutil.NextBlock(genesis, testutil.WithVersion(2)), semantic.ErrUnsupportedVersion},
		{"首笔不是Coinbase", noCoinbase, semantic.ErrMissingCoinbase},
		{"多个Coinbase", extraCoinbase, semantic.ErrExtraCoinbase},
		{"重复输入", dupInput, semantic.ErrDuplicateInput},
		{"交易没有输出", noOutputs, semantic.ErrMalformedTx},
		{"Merkle根错误", testutil.NextBlock(genesis, testutil.WithMerkleRoot(types.Hash{1})), semantic.ErrMerkleRoot},
	}

	f := newFixture(t, nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.svc.ValidateSemantics(context.Background(), tc.block, false, false)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestService_FutureTimestamp_Rejected 测试时间戳超前
func TestService_FutureTimestamp_Rejected(t *testing.T) {
	// Arrange
	f := newFixture(t, func(o *verifyconfig.VerifyOptions) { o.MaxFutureDrift = time.Hour })
	now := testutil.Now()
	ok := testutil.NextBlock(testutil.Genesis(), testutil.WithTimestamp(uint64(now.Add(59*time.Minute).Unix())))
	late := testutil.NextBlock(testutil.Genesis(), testutil.WithTimestamp(uint64(now.Add(61*time.Minute).Unix())))

	// Act & Assert
	assert.NoError(t, f.svc.ValidateSemantics(context.Background(), ok, false, false))
	assert.ErrorIs(t, f.svc.ValidateSemantics(context.Background(), late, false, false), semantic.ErrFutureTimestamp)

	// 时钟前进后同一区块可以通过
	f.clock.Advance(2 * time.Hour)
	assert.NoError(t, f.svc.ValidateSemantics(context.Background(), late, false, false))
}

// TestService_TimestampBeyondInt64_Rejected 超出 int64 范围的时间戳不能绕过超前检查
func TestService_TimestampBeyondInt64_Rejected(t *testing.T) {
	tests := []struct {
		name string
		ts   uint64
	}{
		{"2^63", 1 << 63},
		{"max uint64", math.MaxUint64},
		{"max int64", math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, nil)
			block := testutil.NextBlock(testutil.Genesis(), testutil.WithTimestamp(tt.ts))

			// Act
			err := f.svc.ValidateSemantics(context.Background(), block, false, false)

			// Assert
			assert.ErrorIs(t, err, semantic.ErrFutureTimestamp)
		})
	}
}

// TestService_FullChecks_OnlyInFullMode 测试完整检查只在 full 模式执行
func TestService_FullChecks_OnlyInFullMode(t *testing.T) {
	// Arrange
	f := newFixture(t, func(o *verifyconfig.VerifyOptions) { o.MaxBlockTransactions = 2 })
	genesis := testutil.Genesis()
	cb := genesis.Transactions[0]
	tooMany := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Spend(cb, 0, 1), testutil.Spend(cb, 1, 1)))
	zeroValue := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Spend(cb, 0, 0)))

	// Act & Assert
	assert.ErrorIs(t, f.svc.ValidateSemantics(context.Background(), tooMany, true, false), semantic.ErrTooManyTransactions)
	assert.NoError(t, f.svc.ValidateSemantics(context.Background(), tooMany, false, false))
	assert.ErrorIs(t, f.svc.ValidateSemantics(context.Background(), zeroValue, true, false), semantic.ErrZeroValueOutput)
	assert.NoError(t, f.svc.ValidateSemantics(context.Background(), zeroValue, false, false))
}

// TestService_Cache_OnlySuccessesAreCached 测试只缓存成功结论
func TestService_Cache_OnlySuccessesAreCached(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	valid := testutil.NextBlock(testutil.Genesis())
	invalid := testutil.NextBlock(testutil.Genesis(), testutil.WithBadProofOfWork())
	ctx := context.Background()

	// Act
	require.NoError(t, f.svc.ValidateSemantics(ctx, valid, true, true))
	require.NoError(t, f.svc.ValidateSemantics(ctx, valid, true, true))
	require.Error(t, f.svc.ValidateSemantics(ctx, invalid, true, true))
	require.Error(t, f.svc.ValidateSemantics(ctx, invalid, true, true))

	// Assert
	assert.Equal(t, int64(1), f.svc.CacheHits())
	assert.Equal(t, 1, f.cache.Count())
	stats := f.svc.CollectMemoryStats()
	assert.Equal(t, "verify.semantic", stats.Module)
	assert.Equal(t, int64(3), stats.Objects)
	assert.Equal(t, int64(1), stats.CacheItems)
}

// TestService_Cache_KeyedByMode 测试缓存键包含检查模式
func TestService_Cache_KeyedByMode(t *testing.T) {
	// Arrange：精简模式通过并缓存，不能让带 POW 的验证命中
	f := newFixture(t, nil)
	block := testutil.NextBlock(testutil.Genesis(), testutil.WithBadProofOfWork())
	ctx := context.Background()

	// Act
	require.NoError(t, f.svc.ValidateSemantics(ctx, block, false, false))
	err := f.svc.ValidateSemantics(ctx, block, true, true)

	// Assert
	assert.ErrorIs(t, err, semantic.ErrProofOfWork)
}

// TestService_CancelledContext_ReturnsContextError 测试上下文取消
func TestService_CancelledContext_ReturnsContextError(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.svc.ValidateSemantics(ctx, testutil.Genesis(), true, true)

	assert.ErrorIs(t, err, context.Canceled)
}

// TestNewService_MissingDependencies_ReturnError 测试依赖检查
func TestNewService_MissingDependencies_ReturnError(t *testing.T) {
	_, err := semantic.NewService(semantic.Dependencies{})
	assert.Error(t, err)
}
