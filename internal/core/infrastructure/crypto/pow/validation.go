package pow

import (
	"fmt"
	"sync"
	"time"

	"github.com/weisyn/blockverify/pkg/types"
)

// 验证错误类型（统计用）
const (
	ErrorInvalidHeader     = "invalid_header"
	ErrorInvalidDifficulty = "invalid_difficulty"
	ErrorInvalidNonce      = "invalid_nonce"
	ErrorInsufficientWork  = "insufficient_work"
)

// ValidationEngine 专门的验证引擎组件
type ValidationEngine struct {
	coreEngine *Engine

	mu         sync.Mutex
	statistics ValidationStats
}

// ValidationStats 验证统计信息
type ValidationStats struct {
	TotalValidations      uint64
	SuccessfulValidations uint64
	FailedValidations     uint64
	LastValidationTime    time.Time
	ErrorCounts           map[string]uint64
}

// NewValidationEngine 创建验证引擎
func NewValidationEngine(coreEngine *Engine) *ValidationEngine {
	return &ValidationEngine{
		coreEngine: coreEngine,
		statistics: ValidationStats{ErrorCounts: make(map[string]uint64)},
	}
}

// VerifyBlockHeader 验证区块头的POW
//
// 📋 **验证流程**：
// 1. 区块头非空
// 2. 难度在 [MinDifficulty, MaxDifficulty] 内
// 3. nonce 长度为8字节
// 4. 区块头哈希前导零位数 >= 难度
//
// 前三项不满足返回 error；哈希不满足难度返回 (false, nil)。
func (v *ValidationEngine) VerifyBlockHeader(header *types.BlockHeader) (bool, error) {
	if header == nil {
		v.record(false, ErrorInvalidHeader)
		return false, ErrNilHeader
	}

	if err := v.coreEngine.ValidateDifficulty(header.Difficulty); err != nil {
		v.record(false, ErrorInvalidDifficulty)
		return false, err
	}

	if err := ValidateNonce(header.Nonce); err != nil {
		v.record(false, ErrorInvalidNonce)
		return false, err
	}

	blockHash := v.coreEngine.headerHash(header)
	if !MeetsDifficulty(blockHash, header.Difficulty) {
		v.record(false, ErrorInsufficientWork)
		v.coreEngine.logger.Debugf("POW不满足难度，高度: %d，难度: %d，前导零位: %d",
			header.Height, header.Difficulty, CountLeadingZeroBits(blockHash))
		return false, nil
	}

	v.record(true, "")
	return true, nil
}

// ValidateNonce 单独验证nonce格式
func ValidateNonce(nonce []byte) error {
	if len(nonce) == 0 {
		return fmt.Errorf("%w: nonce不能为空", ErrInvalidNonce)
	}
	if len(nonce) != types.NonceLength {
		return fmt.Errorf("%w: nonce长度必须为%d字节，实际长度: %d", ErrInvalidNonce, types.NonceLength, len(nonce))
	}
	return nil
}

// record 更新统计
func (v *ValidationEngine) record(success bool, errorType string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.statistics.TotalValidations++
	v.statistics.LastValidationTime = time.Now()
	if success {
		v.statistics.SuccessfulValidations++
		return
	}
	v.statistics.FailedValidations++
	v.statistics.ErrorCounts[errorType]++
}

// GetStatistics 获取验证统计信息（深拷贝）
func (v *ValidationEngine) GetStatistics() ValidationStats {
	v.mu.Lock()
	defer v.mu.Unlock()

	errorCountsCopy := make(map[string]uint64, len(v.statistics.ErrorCounts))
	for k, c := range v.statistics.ErrorCounts {
		errorCountsCopy[k] = c
	}
	stats := v.statistics
	stats.ErrorCounts = errorCountsCopy
	return stats
}
