package semantic

import (
	"fmt"
	"time"

	"github.com/weisyn/blockverify/pkg/types"
)

// checkStructure 验证区块结构
//
// 🎯 **结构验证检查项**：
// 1. 区块头与交易列表存在
// 2. 版本受支持
// 3. 首个交易是 Coinbase，其余交易都不是
// 4. 非 Coinbase 交易同时有输入和输出
// 5. 区块内没有两笔输入引用同一个输出
func (s *Service) checkStructure(block *types.Block) error {
	if block.Header == nil {
		return ErrNilHeader
	}
	if len(block.Transactions) == 0 {
		return ErrNoTransactions
	}

	if v := block.Header.Version; v == 0 || v > s.opts.MaxBlockVersion {
		return fmt.Errorf("%w: version=%d, 最高支持=%d", ErrUnsupportedVersion, v, s.opts.MaxBlockVersion)
	}

	if !block.Transactions[0].IsCoinbase() {
		return ErrMissingCoinbase
	}
	if len(block.Transactions[0].Outputs) == 0 {
		return fmt.Errorf("%w: Coinbase交易没有输出", ErrMalformedTx)
	}

	seen := make(map[types.OutPoint]struct{})
	for i, tx := range block.Transactions[1:] {
		idx := i + 1
		if tx == nil {
			return fmt.Errorf("%w: 第%d笔交易为空", ErrMalformedTx, idx)
		}
		if tx.IsCoinbase() {
			return fmt.Errorf("%w: 第%d笔交易", ErrExtraCoinbase, idx)
		}
		if len(tx.Outputs) == 0 {
			return fmt.Errorf("%w: 第%d笔交易没有输出", ErrMalformedTx, idx)
		}
		for _, in := range tx.Inputs {
			if _, dup := seen[in]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateInput, in)
			}
			seen[in] = struct{}{}
		}
	}
	return nil
}

// checkMerkleRoot 区块头中的 Merkle 根必须等于交易哈希的 Merkle 根
func (s *Service) checkMerkleRoot(block *types.Block) error {
	root, err := s.merkle.TransactionRoot(block.Transactions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMerkleRoot, err)
	}
	if root != block.Header.MerkleRoot {
		return fmt.Errorf("%w: 期望=%s, 区块头=%s", ErrMerkleRoot, root, block.Header.MerkleRoot)
	}
	return nil
}

// checkTimestamp 区块时间不能超前本地时钟 MaxFutureDrift
func (s *Service) checkTimestamp(block *types.Block) error {
	now := s.clock.Now()
	limit := now.Add(s.opts.MaxFutureDrift).Unix()
	// 在 uint64 上比较，超出 int64 的时间戳不能回绕成负数
	if limit < 0 || block.Header.Timestamp > uint64(limit) {
		return fmt.Errorf("%w: 区块时间=%d, 当前时间=%d, 允许偏差=%s",
			ErrFutureTimestamp, block.Header.Timestamp, now.Unix(), s.opts.MaxFutureDrift.Round(time.Second))
	}
	return nil
}

// checkFull 完整检查：交易数上限与输出金额
func (s *Service) checkFull(block *types.Block) error {
	if n := len(block.Transactions); n > s.opts.MaxBlockTransactions {
		return fmt.Errorf("%w: %d > %d", ErrTooManyTransactions, n, s.opts.MaxBlockTransactions)
	}
	for i, tx := range block.Transactions {
		for j, out := range tx.Outputs {
			if out.Value == 0 {
				return fmt.Errorf("%w: 交易%d 输出%d", ErrZeroValueOutput, i, j)
			}
		}
	}
	return nil
}

// checkProofOfWork 验证区块头 POW
//
// 难度范围与 nonce 格式错误同样归为 ErrProofOfWork。
func (s *Service) checkProofOfWork(block *types.Block) error {
	ok, err := s.pow.VerifyBlockHeader(block.Header)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProofOfWork, err)
	}
	if !ok {
		return fmt.Errorf("%w: 哈希不满足难度 %d", ErrProofOfWork, block.Header.Difficulty)
	}
	return nil
}
