package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// ================================================================================================
// 🎯 区块数据模型
// ================================================================================================
//
// 区块在构造完成后不可变。验证流水线的所有参与者（调用方、流水线各阶段、验证器）
// 共享同一个 *Block 指针，任何访问器都不会复制区块内容。

// HashLength 哈希字节长度
const HashLength = 32

// NonceLength 区块头 nonce 的固定长度（字节）
const NonceLength = 8

// Hash 32字节哈希值，JSON 中以十六进制字符串表示
type Hash [HashLength]byte

// ZeroHash 全零哈希（创世区块的父哈希）
var ZeroHash Hash

// BytesToHash 将字节切片转换为 Hash，长度不符时返回错误
func BytesToHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("哈希长度错误: 期望%d字节, 得到%d字节", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// ParseHash 解析十六进制哈希字符串
func ParseHash(s string) (Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("解析哈希失败: %w", err)
	}
	return BytesToHash(raw)
}

// String 返回十六进制表示
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// IsZero 是否为全零哈希
func (h Hash) IsZero() bool { return h == ZeroHash }

// MarshalText 实现 encoding.TextMarshaler
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// OutPoint 交易输入引用的输出位置
type OutPoint struct {
	TxHash Hash   `json:"tx_hash"`
	Index  uint32 `json:"index"`
}

// String 返回 "txhash:index" 形式
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxHash, o.Index)
}

// Output 交易输出
type Output struct {
	Value      uint64 `json:"value"`
	LockScript []byte `json:"lock_script,omitempty"`
}

// Transaction 区块中的交易
//
// 输入为空的交易是 coinbase 交易，只能出现在区块的第一个位置。
type Transaction struct {
	Version uint32     `json:"version"`
	Inputs  []OutPoint `json:"inputs,omitempty"`
	Outputs []Output   `json:"outputs"`
	Payload []byte     `json:"payload,omitempty"`
}

// IsCoinbase 是否为 coinbase 交易
func (tx *Transaction) IsCoinbase() bool {
	return tx != nil && len(tx.Inputs) == 0
}

// CanonicalBytes 返回交易的规范编码（用于哈希计算）
func (tx *Transaction) CanonicalBytes() []byte {
	size := 4 + 4 + len(tx.Inputs)*(HashLength+4) + 4 + 4 + len(tx.Payload)
	for _, out := range tx.Outputs {
		size += 8 + 4 + len(out.LockScript)
	}
	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, tx.Version)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.TxHash[:]...)
		buf = binary.BigEndian.AppendUint32(buf, in.Index)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = binary.BigEndian.AppendUint64(buf, out.Value)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(out.LockScript)))
		buf = append(buf, out.LockScript...)
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(tx.Payload)))
	buf = append(buf, tx.Payload...)
	return buf
}

// BlockHeader 区块头
type BlockHeader struct {
	Version      uint32 `json:"version"`
	Height       uint64 `json:"height"`
	PreviousHash Hash   `json:"previous_hash"`
	MerkleRoot   Hash   `json:"merkle_root"`
	Timestamp    uint64 `json:"timestamp"`  // Unix 秒
	Difficulty   uint64 `json:"difficulty"` // 要求的哈希前导零位数
	Nonce        []byte `json:"nonce"`
}

// CanonicalBytes 返回区块头的规范编码（区块哈希与 PoW 的输入）
func (h *BlockHeader) CanonicalBytes() []byte {
	buf := make([]byte, 0, 4+8+HashLength*2+8+8+4+len(h.Nonce))
	buf = binary.BigEndian.AppendUint32(buf, h.Version)
	buf = binary.BigEndian.AppendUint64(buf, h.Height)
	buf = append(buf, h.PreviousHash[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.BigEndian.AppendUint64(buf, h.Timestamp)
	buf = binary.BigEndian.AppendUint64(buf, h.Difficulty)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(h.Nonce)))
	buf = append(buf, h.Nonce...)
	return buf
}

// Block 区块
type Block struct {
	Header       *BlockHeader   `json:"header"`
	Transactions []*Transaction `json:"transactions"`
}

// Height 返回区块高度，区块头为空时返回0
func (b *Block) Height() uint64 {
	if b == nil || b.Header == nil {
		return 0
	}
	return b.Header.Height
}
