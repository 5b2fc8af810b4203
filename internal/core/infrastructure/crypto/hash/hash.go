// Package hash 提供哈希计算服务
package hash

import (
	"crypto/subtle"

	sha256 "github.com/minio/sha256-simd"

	cryptointf "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// HashService 提供哈希计算功能
//
// 底层使用 sha256-simd，在支持的 CPU 上自动启用 SHA 扩展指令。
// 无状态，可并发使用。
type HashService struct{}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	return &HashService{}
}

// SHA256 计算SHA-256哈希
//
// 返回:
//   - []byte: 32字节的SHA-256哈希结果
func (s *HashService) SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// DoubleSHA256 计算双重SHA-256哈希
//
// 返回:
//   - []byte: 32字节的双重SHA-256哈希结果
func (s *HashService) DoubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// ConstantTimeCompare 在常量时间内比较两个哈希值是否相等
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
