package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/blockverify/internal/config/storage/badger"
	interfaces "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/blockverify/pkg/types"
)

// setupTestStore 创建内存模式的测试存储
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := badgerconfig.New(&types.UserBadgerConfig{InMemory: types.BoolPtr(true)}, t.TempDir())
	store, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestStore_BasicOperations_RoundTrip 测试基本读写删
func TestStore_BasicOperations_RoundTrip(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, []byte("k1"), []byte("v1")))
	got, err := store.Get(ctx, []byte("k1"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	exists, err := store.Exists(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, []byte("k1")))
	got, err = store.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Nil(t, got, "键不存在时应返回nil值")
}

// TestStore_PrefixScan_ReturnsOnlyMatchingKeys 测试前缀扫描
func TestStore_PrefixScan_ReturnsOnlyMatchingKeys(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, []byte("blk:a"), []byte("1")))
	require.NoError(t, store.Set(ctx, []byte("blk:b"), []byte("2")))
	require.NoError(t, store.Set(ctx, []byte("hgt:a"), []byte("3")))

	// Act
	result, err := store.PrefixScan(ctx, []byte("blk:"))

	// Assert
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, []byte("1"), result["blk:a"])
	assert.Equal(t, []byte("2"), result["blk:b"])
}

// TestStore_RunInTransaction_CommitsAllWrites 测试事务提交
func TestStore_RunInTransaction_CommitsAllWrites(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()

	// Act
	err := store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
		if err := tx.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		val, err := tx.Get([]byte("a"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("1"), val, "事务内应可读到自身写入")
		return tx.Set([]byte("b"), []byte("2"))
	})

	// Assert
	require.NoError(t, err)
	for _, k := range []string{"a", "b"} {
		exists, err := store.Exists(ctx, []byte(k))
		require.NoError(t, err)
		assert.True(t, exists, k)
	}
}

// TestStore_RunInTransaction_ErrorDiscardsWrites 测试事务失败回滚
func TestStore_RunInTransaction_ErrorDiscardsWrites(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	// Act
	err := store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
		_ = tx.Set([]byte("a"), []byte("1"))
		return boom
	})

	// Assert
	require.ErrorIs(t, err, boom)
	exists, err := store.Exists(ctx, []byte("a"))
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestStore_Closed_RejectsWrites 测试关闭后拒绝写入
func TestStore_Closed_RejectsWrites(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	require.NoError(t, store.Close())

	// Act
	err := store.Set(context.Background(), []byte("a"), []byte("1"))

	// Assert
	assert.ErrorIs(t, err, ErrStoreClosing)
	assert.NoError(t, store.Close(), "重复关闭应为空操作")
}

// TestStore_DiskMode_PersistsAcrossReopen 测试磁盘模式重启后数据仍在
func TestStore_DiskMode_PersistsAcrossReopen(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	cfg := badgerconfig.New(nil, dir)
	store, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), []byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	// Act
	reopened, err := New(cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), []byte("k"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
