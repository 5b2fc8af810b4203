// Package crypto 定义密码学基础设施接口
package crypto

import "github.com/weisyn/blockverify/pkg/types"

// HashManager 哈希计算服务
//
// 区块哈希、交易哈希与 Merkle 树都通过本接口计算，
// 保证验证器与链状态服务使用完全一致的哈希算法。
type HashManager interface {
	// SHA256 计算 SHA-256 哈希（32字节）
	SHA256(data []byte) []byte

	// DoubleSHA256 计算双重 SHA-256 哈希（32字节）
	DoubleSHA256(data []byte) []byte
}

// BlockHashManager 区块与交易标识计算服务
type BlockHashManager interface {
	// BlockHash 计算区块哈希（区块头规范编码的双重SHA-256）
	BlockHash(block *types.Block) (types.Hash, error)

	// HeaderHash 计算区块头哈希
	HeaderHash(header *types.BlockHeader) (types.Hash, error)

	// TransactionHash 计算交易哈希（交易规范编码的双重SHA-256）
	TransactionHash(tx *types.Transaction) (types.Hash, error)
}
