package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoryconfig "github.com/weisyn/blockverify/internal/config/storage/memory"
)

// setupTestStore 创建测试存储
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(memoryconfig.New(nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestStore_SetGet_ReturnsCopy 测试基本读写
func TestStore_SetGet_ReturnsCopy(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, "k", []byte("value"), 0))
	got, ok, err := store.Get(ctx, "k")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)
	assert.Equal(t, 1, store.Count())
}

// TestStore_Get_MissingKey_NotExists 测试不存在的键
func TestStore_Get_MissingKey_NotExists(t *testing.T) {
	store := setupTestStore(t)

	got, ok, err := store.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestStore_TTL_ExpiredEntryIsHidden 测试TTL过期
func TestStore_TTL_ExpiredEntryIsHidden(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	// Act
	_, okBefore, err := store.Get(ctx, "k")
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, okAfter, err := store.Get(ctx, "k")
	require.NoError(t, err)

	// Assert
	assert.True(t, okBefore)
	assert.False(t, okAfter)
}

// TestStore_Delete_RemovesEntry 测试删除
func TestStore_Delete_RemovesEntry(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "never-set"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestStore_Closed_RejectsOperations 测试关闭后拒绝操作
func TestStore_Closed_RejectsOperations(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Close())

	err := store.Set(context.Background(), "k", []byte("v"), 0)

	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.Zero(t, store.Count())
	assert.NoError(t, store.Close())
}
