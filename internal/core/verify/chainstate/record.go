package chainstate

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/weisyn/blockverify/pkg/types"
)

// ==================== 存储键布局 ====================
//
//	blk:<hash hex>      → snappy(JSON(Block))
//	hgt:<height 8B BE>  → hash(32B)
//	meta:tip            → hash(32B)

var (
	blockKeyPrefix  = []byte("blk:")
	heightKeyPrefix = []byte("hgt:")
	tipKey          = []byte("meta:tip")
)

// maxRecordBytes 单个区块记录解压后的上限
const maxRecordBytes = 64 << 20

func blockKey(hash types.Hash) []byte {
	return append(append([]byte(nil), blockKeyPrefix...), hash.String()...)
}

func heightKey(height uint64) []byte {
	return binary.BigEndian.AppendUint64(append([]byte(nil), heightKeyPrefix...), height)
}

// parseHeightKey 从高度键中解析高度
func parseHeightKey(key []byte) (uint64, error) {
	if len(key) != len(heightKeyPrefix)+8 {
		return 0, fmt.Errorf("%w: 高度键长度=%d", ErrCorruptIndex, len(key))
	}
	return binary.BigEndian.Uint64(key[len(heightKeyPrefix):]), nil
}

// encodeBlock 序列化区块记录
func encodeBlock(block *types.Block) ([]byte, error) {
	raw, err := json.Marshal(block)
	if err != nil {
		return nil, fmt.Errorf("序列化区块失败: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

// decodeBlock 反序列化区块记录
func decodeBlock(data []byte) (*types.Block, error) {
	// snappy 提供解压后长度，可提前拒绝异常记录
	if n, err := snappy.DecodedLen(data); err == nil && n > maxRecordBytes {
		return nil, fmt.Errorf("%w: 区块记录过大 %d > %d", ErrCorruptIndex, n, maxRecordBytes)
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: 解压区块记录失败: %v", ErrCorruptIndex, err)
	}
	var block types.Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("%w: 解析区块记录失败: %v", ErrCorruptIndex, err)
	}
	if block.Header == nil {
		return nil, fmt.Errorf("%w: 区块记录缺少区块头", ErrCorruptIndex)
	}
	return &block, nil
}
