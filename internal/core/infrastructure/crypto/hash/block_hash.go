package hash

import (
	"errors"

	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/blockverify/pkg/types"
)

var (
	// ErrNilBlock 区块或区块头为空
	ErrNilBlock = errors.New("区块或区块头为空")
	// ErrNilTransaction 交易为空
	ErrNilTransaction = errors.New("交易为空")
)

var _ crypto.BlockHashManager = (*BlockHashService)(nil)

// BlockHashService 实现区块与交易哈希服务
//
// 哈希输入是 pkg/types 定义的规范编码，与序列化格式无关。
type BlockHashService struct {
	hashManager crypto.HashManager
}

// NewBlockHashService 创建区块哈希服务实例
func NewBlockHashService(hashManager crypto.HashManager) *BlockHashService {
	if hashManager == nil {
		hashManager = NewHashService()
	}
	return &BlockHashService{hashManager: hashManager}
}

// BlockHash 计算区块哈希（确定性）
func (s *BlockHashService) BlockHash(block *types.Block) (types.Hash, error) {
	if block == nil {
		return types.Hash{}, ErrNilBlock
	}
	return s.HeaderHash(block.Header)
}

// HeaderHash 计算区块头哈希
func (s *BlockHashService) HeaderHash(header *types.BlockHeader) (types.Hash, error) {
	if header == nil {
		return types.Hash{}, ErrNilBlock
	}
	return types.BytesToHash(s.hashManager.DoubleSHA256(header.CanonicalBytes()))
}

// TransactionHash 计算交易哈希
func (s *BlockHashService) TransactionHash(tx *types.Transaction) (types.Hash, error) {
	if tx == nil {
		return types.Hash{}, ErrNilTransaction
	}
	return types.BytesToHash(s.hashManager.DoubleSHA256(tx.CanonicalBytes()))
}
