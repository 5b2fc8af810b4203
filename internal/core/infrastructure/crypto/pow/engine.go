// Package pow 提供POW（工作量证明）算法的核心基础组件
//
// 🔧 **核心引擎组件 (Core Engine Component)**
//
// 难度以区块头哈希的前导零位数表示，哈希为区块头规范编码的双重SHA256。
// - Engine: 核心引擎，对外提供 POWEngine 接口
// - validation.go: 区块头 POW 验证
// - mining.go: nonce 搜索（参考实现与测试构造区块使用）
package pow

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/types"
)

var (
	// ErrNilHeader 区块头为空
	ErrNilHeader = errors.New("区块头不能为空")
	// ErrInvalidDifficulty 难度不在允许范围内
	ErrInvalidDifficulty = errors.New("难度不合理")
	// ErrInvalidNonce nonce 格式错误
	ErrInvalidNonce = errors.New("nonce格式错误")
)

// Config POW 引擎参数
type Config struct {
	MinDifficulty uint64 // 最小难度（前导零位数）
	MaxDifficulty uint64 // 最大难度，不超过哈希位数
	MaxNonce      uint64 // 挖矿时搜索的最大 nonce
}

// DefaultConfig 默认参数：难度范围 [1, 256]
func DefaultConfig() *Config {
	return &Config{
		MinDifficulty: 1,
		MaxDifficulty: types.HashLength * 8,
		MaxNonce:      ^uint64(0),
	}
}

// Engine POW核心引擎
type Engine struct {
	hashManager crypto.HashManager
	logger      log.Logger
	config      *Config

	miningEngine     *MiningEngine
	validationEngine *ValidationEngine
}

var _ crypto.POWEngine = (*Engine)(nil)

// NewEngine 创建POW核心引擎实例
//
// 📋 **参数说明**：
//   - hashManager: 哈希计算管理器（不能为nil）
//   - logger: 日志记录器（不能为nil）
//   - config: POW配置参数（可以为nil，使用默认配置）
func NewEngine(hashManager crypto.HashManager, logger log.Logger, config *Config) (*Engine, error) {
	if hashManager == nil {
		return nil, fmt.Errorf("哈希管理器不能为空")
	}
	if logger == nil {
		return nil, fmt.Errorf("日志记录器不能为空")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxDifficulty == 0 || config.MaxDifficulty > types.HashLength*8 {
		config.MaxDifficulty = types.HashLength * 8
	}

	engine := &Engine{
		hashManager: hashManager,
		logger:      logger.With("component", "pow_core_engine"),
		config:      config,
	}
	engine.validationEngine = NewValidationEngine(engine)
	engine.miningEngine = NewMiningEngine(engine)

	engine.logger.Debugf("POW引擎初始化完成，难度范围=[%d, %d]", config.MinDifficulty, config.MaxDifficulty)
	return engine, nil
}

// ==================== POWEngine接口实现 ====================

// MineBlockHeader 对区块头进行POW挖矿计算，委托给挖矿引擎
func (e *Engine) MineBlockHeader(ctx context.Context, header *types.BlockHeader) (*types.BlockHeader, error) {
	return e.miningEngine.MineBlockHeader(ctx, header)
}

// VerifyBlockHeader 验证区块头的POW是否有效，委托给验证引擎
func (e *Engine) VerifyBlockHeader(header *types.BlockHeader) (bool, error) {
	return e.validationEngine.VerifyBlockHeader(header)
}

// Statistics 返回验证统计快照
func (e *Engine) Statistics() ValidationStats {
	return e.validationEngine.GetStatistics()
}

// ==================== 基础工具方法 ====================

// ValidateDifficulty 验证难度值的合理性
func (e *Engine) ValidateDifficulty(difficulty uint64) error {
	if difficulty == 0 {
		return fmt.Errorf("%w: 难度不能为零", ErrInvalidDifficulty)
	}
	if difficulty < e.config.MinDifficulty {
		return fmt.Errorf("%w: 难度 %d 低于最小值 %d", ErrInvalidDifficulty, difficulty, e.config.MinDifficulty)
	}
	if difficulty > e.config.MaxDifficulty {
		return fmt.Errorf("%w: 难度 %d 超过最大值 %d", ErrInvalidDifficulty, difficulty, e.config.MaxDifficulty)
	}
	return nil
}

// headerHash 计算区块头的 POW 哈希
func (e *Engine) headerHash(header *types.BlockHeader) []byte {
	return e.hashManager.DoubleSHA256(header.CanonicalBytes())
}

// SetNonceLE 将 nonce 以小端序写入区块头（8字节）
func SetNonceLE(header *types.BlockHeader, nonce uint64) {
	if len(header.Nonce) != types.NonceLength {
		header.Nonce = make([]byte, types.NonceLength)
	}
	binary.LittleEndian.PutUint64(header.Nonce, nonce)
}

// CountLeadingZeroBits 计算哈希的前导零位数
func CountLeadingZeroBits(hash []byte) uint64 {
	var zeroBits uint64
	for _, b := range hash {
		if b == 0 {
			zeroBits += 8
			continue
		}
		for i := 7; i >= 0; i-- {
			if (b>>uint(i))&1 != 0 {
				return zeroBits
			}
			zeroBits++
		}
	}
	return zeroBits
}

// MeetsDifficulty 哈希是否至少有 targetBits 个前导零位
func MeetsDifficulty(hash []byte, targetBits uint64) bool {
	if len(hash) == 0 {
		return false
	}
	return CountLeadingZeroBits(hash) >= targetBits
}
