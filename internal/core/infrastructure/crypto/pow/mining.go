package pow

import (
	"context"
	"fmt"
	"time"

	"github.com/weisyn/blockverify/pkg/types"
)

// ctxCheckInterval 每多少次尝试检查一次上下文
const ctxCheckInterval = 1024

// MiningEngine 专门的挖矿引擎组件
//
// 从 nonce=0 开始递增搜索，不修改时间戳，
// 同一区块头的挖矿结果是确定的。
type MiningEngine struct {
	coreEngine *Engine
}

// NewMiningEngine 创建挖矿引擎
func NewMiningEngine(coreEngine *Engine) *MiningEngine {
	return &MiningEngine{coreEngine: coreEngine}
}

// MineBlockHeader 搜索满足难度的 nonce
//
// 返回填好 nonce 的区块头副本，原区块头不被修改。
func (m *MiningEngine) MineBlockHeader(ctx context.Context, header *types.BlockHeader) (*types.BlockHeader, error) {
	if header == nil {
		return nil, ErrNilHeader
	}
	if err := m.coreEngine.ValidateDifficulty(header.Difficulty); err != nil {
		return nil, fmt.Errorf("难度验证失败: %w", err)
	}

	// 克隆区块头避免修改原始对象
	mined := *header
	mined.Nonce = make([]byte, types.NonceLength)

	logger := m.coreEngine.logger
	startTime := time.Now()
	maxNonce := m.coreEngine.config.MaxNonce

	for nonce := uint64(0); ; nonce++ {
		if nonce%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("挖矿被取消: %w", err)
			}
		}

		SetNonceLE(&mined, nonce)
		if MeetsDifficulty(m.coreEngine.headerHash(&mined), mined.Difficulty) {
			logger.Debugf("挖矿成功，高度: %d, nonce: %d, 耗时: %v", mined.Height, nonce, time.Since(startTime))
			return &mined, nil
		}

		if nonce == maxNonce {
			return nil, fmt.Errorf("nonce搜索空间耗尽，未找到有效解")
		}
	}
}
