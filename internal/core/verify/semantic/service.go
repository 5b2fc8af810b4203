// Package semantic 实现上下文无关的区块语义验证
//
// 🎯 **语义验证器**
//
// 只检查区块自身，不读取链状态。检查按顺序执行，第一个错误即返回：
// 结构 → Merkle根 → 时间戳 → 完整检查（可选）→ 工作量证明（可选）。
//
// 验证通过的结论按 (区块哈希, full, pow) 缓存在内存存储中，
// 失败结论不缓存。
package semantic

import (
	"context"
	"fmt"
	"sync/atomic"

	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// moduleName 内存上报使用的模块名
const moduleName = "verify.semantic"

// Dependencies 语义验证器依赖
type Dependencies struct {
	BlockHasher crypto.BlockHashManager     // 必需
	Merkle      crypto.MerkleTreeManager    // 必需
	POW         crypto.POWEngine            // 必需
	Clock       clock.Clock                 // 必需
	Cache       storage.MemoryStore         // 可选，为空时不缓存
	Options     *verifyconfig.VerifyOptions // 可选，为空时使用默认值
	Logger      log.Logger                  // 可选
}

// Service 语义验证服务
type Service struct {
	blockHasher crypto.BlockHashManager
	merkle      crypto.MerkleTreeManager
	pow         crypto.POWEngine
	clock       clock.Clock
	cache       storage.MemoryStore
	opts        *verifyconfig.VerifyOptions
	logger      log.Logger

	validations atomic.Int64
	cacheHits   atomic.Int64
}

var (
	_ verifyiface.SemanticValidator = (*Service)(nil)
	_ metrics.MemoryReporter        = (*Service)(nil)
)

// NewService 创建语义验证服务
func NewService(deps Dependencies) (*Service, error) {
	if deps.BlockHasher == nil {
		return nil, fmt.Errorf("blockHasher 不能为空")
	}
	if deps.Merkle == nil {
		return nil, fmt.Errorf("merkle 不能为空")
	}
	if deps.POW == nil {
		return nil, fmt.Errorf("pow 不能为空")
	}
	if deps.Clock == nil {
		return nil, fmt.Errorf("clock 不能为空")
	}
	opts := deps.Options
	if opts == nil {
		opts = verifyconfig.DefaultOptions()
	}

	return &Service{
		blockHasher: deps.BlockHasher,
		merkle:      deps.Merkle,
		pow:         deps.POW,
		clock:       deps.Clock,
		cache:       deps.Cache,
		opts:        opts,
		logger:      deps.Logger,
	}, nil
}

// ValidateSemantics 验证区块语义
func (s *Service) ValidateSemantics(ctx context.Context, block *types.Block, fullChecks, checkPoW bool) error {
	if block == nil {
		return ErrNilBlock
	}
	if block.Header == nil {
		return ErrNilHeader
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	blockHash, err := s.blockHasher.BlockHash(block)
	if err != nil {
		return fmt.Errorf("计算区块哈希失败: %w", err)
	}
	key := cacheKey(blockHash, fullChecks, checkPoW)
	if s.cachedValid(ctx, key) {
		s.cacheHits.Add(1)
		return nil
	}

	s.validations.Add(1)
	if err := s.validate(block, fullChecks, checkPoW); err != nil {
		if s.logger != nil {
			s.logger.Debugf("语义验证失败: hash=%s height=%d full=%t pow=%t err=%v",
				blockHash, block.Header.Height, fullChecks, checkPoW, err)
		}
		return err
	}

	s.rememberValid(ctx, key)
	return nil
}

// validate 按顺序执行各项检查
func (s *Service) validate(block *types.Block, fullChecks, checkPoW bool) error {
	if err := s.checkStructure(block); err != nil {
		return err
	}
	if err := s.checkMerkleRoot(block); err != nil {
		return err
	}
	if err := s.checkTimestamp(block); err != nil {
		return err
	}
	if fullChecks {
		if err := s.checkFull(block); err != nil {
			return err
		}
	}
	if checkPoW {
		if err := s.checkProofOfWork(block); err != nil {
			return err
		}
	}
	return nil
}

// ==================== 结论缓存 ====================

func cacheKey(hash types.Hash, full, pow bool) string {
	return fmt.Sprintf("sem:%s:%t:%t", hash, full, pow)
}

func (s *Service) cachedValid(ctx context.Context, key string) bool {
	if s.cache == nil {
		return false
	}
	_, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.Warnf("读取语义验证缓存失败: %v", err)
		}
		return false
	}
	return ok
}

func (s *Service) rememberValid(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, []byte{1}, 0); err != nil && s.logger != nil {
		s.logger.Warnf("写入语义验证缓存失败: %v", err)
	}
}

// ==================== 内存上报 ====================

// ModuleName 实现 MemoryReporter
func (s *Service) ModuleName() string { return moduleName }

// CollectMemoryStats 实现 MemoryReporter
func (s *Service) CollectMemoryStats() metrics.ModuleMemoryStats {
	var cacheItems int64
	if s.cache != nil {
		cacheItems = int64(s.cache.Count())
	}
	return metrics.ModuleMemoryStats{
		Module:      moduleName,
		Objects:     s.validations.Load(),
		ApproxBytes: cacheItems * 96,
		CacheItems:  cacheItems,
	}
}

// CacheHits 返回缓存命中次数
func (s *Service) CacheHits() int64 { return s.cacheHits.Load() }
