// Package merkle 提供Merkle根计算
package merkle

import (
	"errors"
	"fmt"

	cryptointf "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/blockverify/pkg/types"
)

// ErrEmptyLeaves 叶子列表为空
var ErrEmptyLeaves = errors.New("数据不能为空")

var _ cryptointf.MerkleTreeManager = (*MerkleService)(nil)

// MerkleService Merkle 根计算服务
//
// 父节点哈希 = DoubleSHA256(left || right)；
// 某一层节点数为奇数时复制最后一个节点补齐。
type MerkleService struct {
	hashManager cryptointf.HashManager
	blockHasher cryptointf.BlockHashManager
}

// NewMerkleService 创建 Merkle 服务
func NewMerkleService(hashManager cryptointf.HashManager, blockHasher cryptointf.BlockHashManager) (*MerkleService, error) {
	if hashManager == nil {
		return nil, fmt.Errorf("哈希管理器不能为空")
	}
	if blockHasher == nil {
		return nil, fmt.Errorf("区块哈希管理器不能为空")
	}
	return &MerkleService{hashManager: hashManager, blockHasher: blockHasher}, nil
}

// ComputeRoot 计算一组叶子哈希的 Merkle 根
//
// 只有一个叶子时根即为该叶子本身。
func (m *MerkleService) ComputeRoot(leaves [][]byte) ([]byte, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyLeaves
	}

	level := make([][]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		// 奇数个节点，复制最后一个
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([][]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 0, len(level[i])+len(level[i+1]))
			combined = append(combined, level[i]...)
			combined = append(combined, level[i+1]...)
			next = append(next, m.hashManager.DoubleSHA256(combined))
		}
		level = next
	}

	root := make([]byte, len(level[0]))
	copy(root, level[0])
	return root, nil
}

// TransactionRoot 计算区块交易列表的 Merkle 根
func (m *MerkleService) TransactionRoot(txs []*types.Transaction) (types.Hash, error) {
	if len(txs) == 0 {
		return types.Hash{}, ErrEmptyLeaves
	}

	leaves := make([][]byte, 0, len(txs))
	for i, tx := range txs {
		h, err := m.blockHasher.TransactionHash(tx)
		if err != nil {
			return types.Hash{}, fmt.Errorf("计算第%d笔交易哈希失败: %w", i, err)
		}
		leaves = append(leaves, h[:])
	}

	root, err := m.ComputeRoot(leaves)
	if err != nil {
		return types.Hash{}, err
	}
	return types.BytesToHash(root)
}
