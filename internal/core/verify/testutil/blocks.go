// Package testutil 提供验证模块测试共用的区块构造器与协作者替身
package testutil

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/merkle"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/pow"
	"github.com/weisyn/blockverify/internal/core/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/types"
)

const (
	// BaseTimestamp 测试链创世区块时间
	BaseTimestamp uint64 = 1_700_000_000

	// BlockInterval 相邻测试区块的时间间隔（秒）
	BlockInterval uint64 = 60

	// EasyDifficulty 测试区块挖矿难度，平均 16 次尝试
	EasyDifficulty uint64 = 4

	// ImpossibleDifficulty 未挖矿 nonce 几乎不可能满足的难度
	ImpossibleDifficulty uint64 = 200
)

// Crypto 测试用密码学服务集合
type Crypto struct {
	Hash      *hash.HashService
	BlockHash *hash.BlockHashService
	Merkle    *merkle.MerkleService
	POW       *pow.Engine
}

// NewCrypto 创建一组真实的密码学服务
func NewCrypto() *Crypto {
	hs := hash.NewHashService()
	bhs := hash.NewBlockHashService(hs)
	ms, err := merkle.NewMerkleService(hs, bhs)
	if err != nil {
		panic(err)
	}
	engine, err := pow.NewEngine(hs, log.NewNop(), nil)
	if err != nil {
		panic(err)
	}
	return &Crypto{Hash: hs, BlockHash: bhs, Merkle: ms, POW: engine}
}

var defaultCrypto = NewCrypto()

// Now 返回晚于测试链所有区块的时钟时间
func Now() time.Time {
	return time.Unix(int64(BaseTimestamp), 0).Add(24 * time.Hour)
}

// blockConfig 区块构造选项
type blockConfig struct {
	txs         []*types.Transaction
	timestamp   *uint64
	difficulty  uint64
	badPoW      bool
	merkleRoot  *types.Hash
	version     uint32
	coinbaseTag []byte
}

// BlockOption 区块构造选项
type BlockOption func(*blockConfig)

// WithTransactions 在 Coinbase 之后追加交易
func WithTransactions(txs ...*types.Transaction) BlockOption {
	return func(c *blockConfig) { c.txs = append(c.txs, txs...) }
}

// WithTimestamp 指定区块时间
func WithTimestamp(ts uint64) BlockOption {
	return func(c *blockConfig) { c.timestamp = &ts }
}

// WithBadProofOfWork 不挖矿并把难度设为 ImpossibleDifficulty
func WithBadProofOfWork() BlockOption {
	return func(c *blockConfig) { c.badPoW = true }
}

// WithMerkleRoot 覆盖区块头中的 Merkle 根
func WithMerkleRoot(root types.Hash) BlockOption {
	return func(c *blockConfig) { c.merkleRoot = &root }
}

// WithVersion 指定区块版本
func WithVersion(v uint32) BlockOption {
	return func(c *blockConfig) { c.version = v }
}

// WithCoinbaseTag 指定 Coinbase 附加数据，用于构造同高度的不同区块
func WithCoinbaseTag(tag string) BlockOption {
	return func(c *blockConfig) { c.coinbaseTag = []byte(tag) }
}

// Genesis 构造测试链创世区块
func Genesis(opts ...BlockOption) *types.Block {
	return build(0, types.ZeroHash, BaseTimestamp, opts)
}

// NextBlock 构造 parent 的子区块
func NextBlock(parent *types.Block, opts ...BlockOption) *types.Block {
	return build(parent.Header.Height+1, parent.Hash(), parent.Header.Timestamp+BlockInterval, opts)
}

// Coinbase 构造 Coinbase 交易
func Coinbase(height uint64, tag []byte, value uint64) *types.Transaction {
	payload := binary.BigEndian.AppendUint64(nil, height)
	payload = append(payload, tag...)
	return &types.Transaction{
		Version: 1,
		Outputs: []types.Output{{Value: value, LockScript: []byte("miner")}},
		Payload: payload,
	}
}

// Spend 构造花费 prev 第 index 个输出的交易
func Spend(prev *types.Transaction, index uint32, value uint64) *types.Transaction {
	return &types.Transaction{
		Version: 1,
		Inputs:  []types.OutPoint{{TxHash: prev.Hash(), Index: index}},
		Outputs: []types.Output{{Value: value, LockScript: []byte("payee")}},
	}
}

func build(height uint64, parent types.Hash, ts uint64, opts []BlockOption) *types.Block {
	cfg := &blockConfig{difficulty: EasyDifficulty, version: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.timestamp != nil {
		ts = *cfg.timestamp
	}

	txs := append([]*types.Transaction{Coinbase(height, cfg.coinbaseTag, 50)}, cfg.txs...)
	root, err := defaultCrypto.Merkle.TransactionRoot(txs)
	if err != nil {
		panic(err)
	}
	if cfg.merkleRoot != nil {
		root = *cfg.merkleRoot
	}

	header := &types.BlockHeader{
		Version:      cfg.version,
		Height:       height,
		PreviousHash: parent,
		MerkleRoot:   root,
		Timestamp:    ts,
		Difficulty:   cfg.difficulty,
		Nonce:        make([]byte, types.NonceLength),
	}

	if cfg.badPoW {
		header.Difficulty = ImpossibleDifficulty
	} else {
		header, err = defaultCrypto.POW.MineBlockHeader(context.Background(), header)
		if err != nil {
			panic(err)
		}
	}

	return &types.Block{Header: header, Transactions: txs}
}
