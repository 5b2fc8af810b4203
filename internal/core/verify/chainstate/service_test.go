package chainstate_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/blockverify/internal/config/storage/badger"
	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	eventbus "github.com/weisyn/blockverify/internal/core/infrastructure/event"
	"github.com/weisyn/blockverify/internal/core/infrastructure/storage/badger"
	wgimpl "github.com/weisyn/blockverify/internal/core/infrastructure/writegate"
	"github.com/weisyn/blockverify/internal/core/verify/chainstate"
	"github.com/weisyn/blockverify/internal/core/verify/testutil"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

func newMemoryStore(t *testing.T) *badger.Store {
	t.Helper()
	cfg := badgerconfig.New(&types.UserBadgerConfig{InMemory: types.BoolPtr(true)}, t.TempDir())
	store, err := badger.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newService(t *testing.T, deps chainstate.Dependencies) *chainstate.Service {
	t.Helper()
	if deps.Store == nil {
		deps.Store = newMemoryStore(t)
	}
	svc, err := chainstate.NewService(context.Background(), deps)
	require.NoError(t, err)
	return svc
}

// commitChain 依次提交区块
func commitChain(t *testing.T, svc *chainstate.Service, blocks ...*types.Block) {
	t.Helper()
	for _, b := range blocks {
		require.NoError(t, svc.ValidateContext(context.Background(), b))
		require.NoError(t, svc.Commit(context.Background(), b))
	}
}

// TestService_EmptyChain_AcceptsOnlyGenesis 测试空链只接受创世区块
func TestService_EmptyChain_AcceptsOnlyGenesis(t *testing.T) {
	// Arrange
	svc := newService(t, chainstate.Dependencies{})
	genesis := testutil.Genesis()
	child := testutil.NextBlock(genesis)

	// Act & Assert
	_, _, ok := svc.Tip(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, svc.ValidateContext(context.Background(), child), chainstate.ErrUnknownParent)
	assert.NoError(t, svc.ValidateContext(context.Background(), genesis))
}

// TestService_CommitChain_AdvancesTip 测试提交推进链尖
func TestService_CommitChain_AdvancesTip(t *testing.T) {
	// Arrange
	svc := newService(t, chainstate.Dependencies{})
	genesis := testutil.Genesis()
	b1 := testutil.NextBlock(genesis)
	b2 := testutil.NextBlock(b1, testutil.WithTransactions(testutil.Spend(genesis.Transactions[0], 0, 40)))

	// Act
	commitChain(t, svc, genesis, b1, b2)

	// Assert
	hash, height, ok := svc.Tip(context.Background())
	require.True(t, ok)
	assert.Equal(t, b2.Hash(), hash)
	assert.Equal(t, uint64(2), height)

	got, err := svc.GetBlock(context.Background(), b1.Hash())
	require.NoError(t, err)
	assert.Equal(t, b1.Hash(), got.Hash())

	byHeight, err := svc.GetBlockByHeight(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, b2.Hash(), byHeight.Hash())

	assert.False(t, svc.IsUnspent(types.OutPoint{TxHash: genesis.Transactions[0].Hash(), Index: 0}))
	assert.True(t, svc.IsUnspent(types.OutPoint{TxHash: b2.Transactions[1].Hash(), Index: 0}))
}

// TestService_ValidateContext_Failures 测试上下文验证失败分类
func TestService_ValidateContext_Failures(t *testing.T) {
	svc := newService(t, chainstate.Dependencies{})
	genesis := testutil.Genesis()
	b1 := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Spend(genesis.Transactions[0], 0, 40)))
	commitChain(t, svc, genesis, b1)

	cb := genesis.Transactions[0]
	orphanParent := testutil.NextBlock(testutil.Genesis(testutil.WithCoinbaseTag("other")))
	fork := testutil.NextBlock(genesis, testutil.WithCoinbaseTag("fork"))

	badHeight := testutil.NextBlock(b1)
	badHeight.Header = cloneHeader(badHeight.Header)
	badHeight.Header.Height = 5

	testCases := []struct {
		name    string
		block   *types.Block
		wantErr error
	}{
		{"已知区块", b1, chainstate.ErrAlreadyKnown},
		{"父区块未知", testutil.NextBlock(orphanParent), chainstate.ErrUnknownParent},
		{"父区块不是链尖", fork, chainstate.ErrConflictingBlock},
		{"第二个创世区块", testutil.Genesis(testutil.WithCoinbaseTag("second")), chainstate.ErrConflictingBlock},
		{"高度错误", badHeight, chainstate.ErrInvalidHeight},
		{"时间不递增", testutil.NextBlock(b1, testutil.WithTimestamp(b1.Header.Timestamp)), chainstate.ErrTimestampNotIncreasing},
		{"双花", testutil.NextBlock(b1, testutil.WithTransactions(testutil.Spend(cb, 0, 1))), chainstate.ErrDoubleSpend},
		{"输入不存在", testutil.NextBlock(b1, testutil.WithTransactions(testutil.Spend(cb, 7, 1))), chainstate.ErrMissingInput},
		{"区块为空", nil, chainstate.ErrNilBlock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidateContext(context.Background(), tc.block)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestService_SpendWithinBlock_Allowed 测试花费同一区块中更早交易的输出
func TestService_SpendWithinBlock_Allowed(t *testing.T) {
	// Arrange
	svc := newService(t, chainstate.Dependencies{})
	genesis := testutil.Genesis()
	commitChain(t, svc, genesis)

	first := testutil.Spend(genesis.Transactions[0], 0, 30)
	second := testutil.Spend(first, 0, 20)
	block := testutil.NextBlock(genesis, testutil.WithTransactions(first, second))

	// Act
	err := svc.ValidateContext(context.Background(), block)

	// Assert
	require.NoError(t, err)
	require.NoError(t, svc.Commit(context.Background(), block))
	assert.False(t, svc.IsUnspent(types.OutPoint{TxHash: first.Hash(), Index: 0}))
	assert.True(t, svc.IsUnspent(types.OutPoint{TxHash: second.Hash(), Index: 0}))
}

// TestService_Commit_RechecksUnderLock 测试提交时重新检查冲突
func TestService_Commit_RechecksUnderLock(t *testing.T) {
	// Arrange：两个区块都通过了上下文验证，第一个提交后第二个失效
	svc := newService(t, chainstate.Dependencies{})
	genesis := testutil.Genesis()
	commitChain(t, svc, genesis)
	a := testutil.NextBlock(genesis, testutil.WithCoinbaseTag("a"))
	b := testutil.NextBlock(genesis, testutil.WithCoinbaseTag("b"))
	require.NoError(t, svc.ValidateContext(context.Background(), a))
	require.NoError(t, svc.ValidateContext(context.Background(), b))

	// Act
	errA := svc.Commit(context.Background(), a)
	errB := svc.Commit(context.Background(), b)

	// Assert
	require.NoError(t, errA)
	assert.ErrorIs(t, errB, chainstate.ErrCommitConflict)
	assert.ErrorIs(t, errB, chainstate.ErrConflictingBlock)
}

// TestService_ReadOnlyGate_BlocksCommit 测试只读模式阻止提交
func TestService_ReadOnlyGate_BlocksCommit(t *testing.T) {
	// Arrange
	gate := wgimpl.New()
	svc := newService(t, chainstate.Dependencies{WriteGate: gate})
	gate.EnterReadOnly("维护中")

	// Act
	err := svc.Commit(context.Background(), testutil.Genesis())

	// Assert
	assert.ErrorIs(t, err, writegate.ErrReadOnly)
	_, _, ok := svc.Tip(context.Background())
	assert.False(t, ok)
}

// failingStore 事务总是失败的存储
type failingStore struct {
	storage.BadgerStore
}

func (failingStore) RunInTransaction(ctx context.Context, fn func(tx storage.BadgerTransaction) error) error {
	return errors.New("磁盘已满")
}

// TestService_PersistFailure_EntersReadOnly 测试持久化失败进入只读模式
func TestService_PersistFailure_EntersReadOnly(t *testing.T) {
	// Arrange
	gate := wgimpl.New()
	svc := newService(t, chainstate.Dependencies{
		Store:     failingStore{BadgerStore: newMemoryStore(t)},
		WriteGate: gate,
	})
	genesis := testutil.Genesis()

	// Act
	err := svc.Commit(context.Background(), genesis)

	// Assert
	require.Error(t, err)
	assert.True(t, gate.IsReadOnly())
	assert.NoError(t, svc.ValidateContext(context.Background(), genesis), "索引不应被更新")
	assert.ErrorIs(t, svc.Commit(context.Background(), genesis), writegate.ErrReadOnly)
}

// TestService_Commit_PublishesTipChanged 测试提交发布链尖变化事件
func TestService_Commit_PublishesTipChanged(t *testing.T) {
	// Arrange
	bus := eventbus.New(nil)
	var tips []*verifyiface.ChainTip
	require.NoError(t, bus.Subscribe(event.EventTypeChainTipChanged, func(tip *verifyiface.ChainTip) {
		tips = append(tips, tip)
	}))
	svc := newService(t, chainstate.Dependencies{EventBus: bus})
	genesis := testutil.Genesis()
	b1 := testutil.NextBlock(genesis)

	// Act
	commitChain(t, svc, genesis, b1)

	// Assert
	require.Len(t, tips, 2)
	assert.Equal(t, b1.Hash(), tips[1].Hash)
	assert.Equal(t, uint64(1), tips[1].Height)
}

// TestService_Reopen_RebuildsIndex 测试重启后从存储重建索引
func TestService_Reopen_RebuildsIndex(t *testing.T) {
	// Arrange
	cfg := badgerconfig.New(nil, t.TempDir())
	store, err := badger.New(cfg, nil)
	require.NoError(t, err)
	svc := newService(t, chainstate.Dependencies{Store: store})
	genesis := testutil.Genesis()
	b1 := testutil.NextBlock(genesis, testutil.WithTransactions(testutil.Spend(genesis.Transactions[0], 0, 10)))
	commitChain(t, svc, genesis, b1)
	require.NoError(t, store.Close())

	// Act
	reopened, err := badger.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	svc2 := newService(t, chainstate.Dependencies{Store: reopened})

	// Assert
	hash, height, ok := svc2.Tip(context.Background())
	require.True(t, ok)
	assert.Equal(t, b1.Hash(), hash)
	assert.Equal(t, uint64(1), height)
	assert.ErrorIs(t, svc2.ValidateContext(context.Background(),
		testutil.NextBlock(b1, testutil.WithTransactions(testutil.Spend(genesis.Transactions[0], 0, 1)))),
		chainstate.ErrDoubleSpend)

	stats := svc2.CollectMemoryStats()
	assert.Equal(t, "verify.chainstate", stats.Module)
	assert.Equal(t, int64(2), stats.Objects)
	assert.Equal(t, int64(2), stats.CacheItems) // b1 的 Coinbase 输出 + 花费交易输出
}

// TestService_GenesisFile_InstalledAndChecked 测试配置创世区块
func TestService_GenesisFile_InstalledAndChecked(t *testing.T) {
	// Arrange
	genesis := testutil.Genesis(testutil.WithCoinbaseTag("configured"))
	path := filepath.Join(t.TempDir(), "genesis.json")
	data, err := json.Marshal(genesis)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	opts := verifyconfig.DefaultOptions()
	opts.GenesisFile = path
	store := newMemoryStore(t)

	// Act
	svc := newService(t, chainstate.Dependencies{Store: store, Options: opts})

	// Assert
	hash, height, ok := svc.Tip(context.Background())
	require.True(t, ok)
	assert.Equal(t, genesis.Hash(), hash)
	assert.Equal(t, uint64(0), height)

	// 同一存储再次启动：创世一致时通过
	_, err = chainstate.NewService(context.Background(), chainstate.Dependencies{Store: store, Options: opts})
	assert.NoError(t, err)

	// 配置换成另一个创世区块时报错
	other := testutil.Genesis(testutil.WithCoinbaseTag("other"))
	data, err = json.Marshal(other)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	_, err = chainstate.NewService(context.Background(), chainstate.Dependencies{Store: store, Options: opts})
	assert.ErrorIs(t, err, chainstate.ErrGenesisMismatch)
}

// TestService_GetBlock_Unknown_ReturnsNotFound 测试查询未知区块
func TestService_GetBlock_Unknown_ReturnsNotFound(t *testing.T) {
	svc := newService(t, chainstate.Dependencies{})

	_, err := svc.GetBlock(context.Background(), types.Hash{9})

	assert.ErrorIs(t, err, chainstate.ErrBlockNotFound)
}

func cloneHeader(h *types.BlockHeader) *types.BlockHeader {
	c := *h
	c.Nonce = append([]byte(nil), h.Nonce...)
	return &c
}
