package chainstate

import (
	"fmt"

	"github.com/weisyn/blockverify/pkg/types"
)

// chainIndex 主链内存索引
//
// 只有一条链，没有分叉与重组：每个区块的父区块都是提交时的链尖。
// 所有方法都要求调用方持有 Service.mu。
type chainIndex struct {
	headers  map[types.Hash]*types.BlockHeader
	byHeight []types.Hash
	utxo     map[types.OutPoint]uint64
	spent    map[types.OutPoint]struct{}
}

func newChainIndex() *chainIndex {
	return &chainIndex{
		headers: make(map[types.Hash]*types.BlockHeader),
		utxo:    make(map[types.OutPoint]uint64),
		spent:   make(map[types.OutPoint]struct{}),
	}
}

func (idx *chainIndex) empty() bool { return len(idx.byHeight) == 0 }

// tip 返回链尖哈希与区块头，链为空时 ok 为 false
func (idx *chainIndex) tip() (types.Hash, *types.BlockHeader, bool) {
	if idx.empty() {
		return types.Hash{}, nil, false
	}
	h := idx.byHeight[len(idx.byHeight)-1]
	return h, idx.headers[h], true
}

// check 检查区块能否接到当前链尖之后
func (idx *chainIndex) check(block *types.Block) error {
	if block == nil || block.Header == nil {
		return ErrNilBlock
	}
	hash := block.Hash()
	if _, known := idx.headers[hash]; known {
		return fmt.Errorf("%w: %s", ErrAlreadyKnown, hash)
	}

	header := block.Header
	tipHash, tipHeader, ok := idx.tip()
	if !ok {
		if header.Height != 0 || !header.PreviousHash.IsZero() {
			return fmt.Errorf("%w: 链为空，只接受创世区块", ErrUnknownParent)
		}
		return idx.checkInputs(block)
	}

	if header.Height == 0 && header.PreviousHash.IsZero() {
		return fmt.Errorf("%w: 创世区块已存在 %s", ErrConflictingBlock, idx.byHeight[0])
	}
	parent, known := idx.headers[header.PreviousHash]
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownParent, header.PreviousHash)
	}
	if header.PreviousHash != tipHash {
		return fmt.Errorf("%w: 父区块 %s 不是链尖 %s", ErrConflictingBlock, header.PreviousHash, tipHash)
	}
	if header.Height != parent.Height+1 {
		return fmt.Errorf("%w: 高度=%d, 父区块高度=%d", ErrInvalidHeight, header.Height, parent.Height)
	}
	if header.Timestamp <= tipHeader.Timestamp {
		return fmt.Errorf("%w: %d <= %d", ErrTimestampNotIncreasing, header.Timestamp, tipHeader.Timestamp)
	}
	return idx.checkInputs(block)
}

// checkInputs 每个输入必须引用未花费输出，或同一区块中更早交易的输出
func (idx *chainIndex) checkInputs(block *types.Block) error {
	created := make(map[types.Hash]int)
	usedInBlock := make(map[types.OutPoint]struct{})

	for i, tx := range block.Transactions {
		if tx == nil {
			continue
		}
		for _, in := range tx.Inputs {
			if _, dup := usedInBlock[in]; dup {
				return fmt.Errorf("%w: 交易%d 输入 %s 在区块内重复花费", ErrDoubleSpend, i, in)
			}
			usedInBlock[in] = struct{}{}

			if _, ok := idx.utxo[in]; ok {
				continue
			}
			if n, ok := created[in.TxHash]; ok && int(in.Index) < n {
				continue
			}
			if _, spent := idx.spent[in]; spent {
				return fmt.Errorf("%w: 交易%d 输入 %s", ErrDoubleSpend, i, in)
			}
			return fmt.Errorf("%w: 交易%d 输入 %s", ErrMissingInput, i, in)
		}
		created[tx.Hash()] = len(tx.Outputs)
	}
	return nil
}

// apply 把已检查的区块并入索引
func (idx *chainIndex) apply(block *types.Block) {
	hash := block.Hash()
	for _, tx := range block.Transactions {
		if tx == nil {
			continue
		}
		for _, in := range tx.Inputs {
			delete(idx.utxo, in)
			idx.spent[in] = struct{}{}
		}
		txHash := tx.Hash()
		for i, out := range tx.Outputs {
			idx.utxo[types.OutPoint{TxHash: txHash, Index: uint32(i)}] = out.Value
		}
	}
	idx.headers[hash] = block.Header
	idx.byHeight = append(idx.byHeight, hash)
}
