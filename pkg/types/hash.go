package types

import (
	sha256 "github.com/minio/sha256-simd"
)

// doubleSHA256 计算双重 SHA-256
func doubleSHA256(data []byte) Hash {
	first := sha256.Sum256(data)
	return Hash(sha256.Sum256(first[:]))
}

// Hash 返回区块头哈希（规范编码的双重SHA-256）
func (h *BlockHeader) Hash() Hash {
	return doubleSHA256(h.CanonicalBytes())
}

// Hash 返回区块哈希，区块头为空时返回全零哈希
func (b *Block) Hash() Hash {
	if b == nil || b.Header == nil {
		return ZeroHash
	}
	return b.Header.Hash()
}

// Hash 返回交易哈希
func (tx *Transaction) Hash() Hash {
	return doubleSHA256(tx.CanonicalBytes())
}
