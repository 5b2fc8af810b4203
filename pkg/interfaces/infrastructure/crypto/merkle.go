package crypto

import "github.com/weisyn/blockverify/pkg/types"

// MerkleTreeManager Merkle 根计算服务
//
// 奇数层复制最后一个节点补齐；只有一个叶子时根即为该叶子。
type MerkleTreeManager interface {
	// ComputeRoot 计算一组叶子哈希的 Merkle 根
	ComputeRoot(leaves [][]byte) ([]byte, error)

	// TransactionRoot 计算区块交易列表的 Merkle 根
	TransactionRoot(txs []*types.Transaction) (types.Hash, error)
}
