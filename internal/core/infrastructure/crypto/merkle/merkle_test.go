package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/blockverify/pkg/types"
)

func newService(t *testing.T) (*MerkleService, *hash.HashService) {
	t.Helper()
	hs := hash.NewHashService()
	svc, err := NewMerkleService(hs, hash.NewBlockHashService(hs))
	require.NoError(t, err)
	return svc, hs
}

func concat(a, b []byte) []byte {
	out := append([]byte{}, a...)
	return append(out, b...)
}

func TestMerkleService_SingleLeaf_RootIsLeaf(t *testing.T) {
	svc, hs := newService(t)
	leaf := hs.SHA256([]byte("数据1"))

	root, err := svc.ComputeRoot([][]byte{leaf})

	require.NoError(t, err)
	assert.Equal(t, leaf, root)
}

func TestMerkleService_FourLeaves_PairwiseHashing(t *testing.T) {
	// Arrange
	svc, hs := newService(t)
	a, b, c, d := hs.SHA256([]byte("a")), hs.SHA256([]byte("b")), hs.SHA256([]byte("c")), hs.SHA256([]byte("d"))
	want := hs.DoubleSHA256(concat(hs.DoubleSHA256(concat(a, b)), hs.DoubleSHA256(concat(c, d))))

	// Act
	root, err := svc.ComputeRoot([][]byte{a, b, c, d})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, want, root)
}

func TestMerkleService_OddLeaves_DuplicatesLast(t *testing.T) {
	svc, hs := newService(t)
	a, b, c := hs.SHA256([]byte("a")), hs.SHA256([]byte("b")), hs.SHA256([]byte("c"))

	odd, err := svc.ComputeRoot([][]byte{a, b, c})
	require.NoError(t, err)
	padded, err := svc.ComputeRoot([][]byte{a, b, c, c})
	require.NoError(t, err)

	assert.Equal(t, padded, odd)
}

func TestMerkleService_EmptyLeaves_ReturnsError(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ComputeRoot(nil)
	assert.ErrorIs(t, err, ErrEmptyLeaves)

	_, err = svc.TransactionRoot(nil)
	assert.ErrorIs(t, err, ErrEmptyLeaves)
}

func TestMerkleService_TransactionRoot_OrderMatters(t *testing.T) {
	svc, _ := newService(t)
	tx1 := &types.Transaction{Version: 1, Outputs: []types.Output{{Value: 1}}}
	tx2 := &types.Transaction{Version: 1, Outputs: []types.Output{{Value: 2}}}

	r1, err := svc.TransactionRoot([]*types.Transaction{tx1, tx2})
	require.NoError(t, err)
	r2, err := svc.TransactionRoot([]*types.Transaction{tx2, tx1})
	require.NoError(t, err)

	assert.NotEqual(t, r1, r2)
}

func TestNewMerkleService_NilDependencies_ReturnError(t *testing.T) {
	_, err := NewMerkleService(nil, nil)
	assert.Error(t, err)
}
