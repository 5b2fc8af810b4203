// Package chainstate 实现基于 BadgerDB 的参考链状态
//
// 🎯 **链状态服务**
//
// 维护单条主链（不处理分叉与重组）的内存索引：区块头、高度序列、
// 未花费输出集合与已花费输出集合。启动时从存储重建索引。
//
// 提交流程：
//  1. 写门闸检查（只读模式下拒绝）
//  2. 持有写锁重新执行上下文检查，失败返回 ErrCommitConflict
//  3. 在单个 Badger 事务中写入区块记录、高度索引与链尖
//  4. 更新内存索引，发布链尖变化事件
//
// 持久化失败后内存索引不再可信，服务进入只读模式直到进程重启。
package chainstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

const moduleName = "verify.chainstate"

// commitOp 写门闸中的操作名
const commitOp = "chainstate.commit"

// Dependencies 链状态服务依赖
type Dependencies struct {
	Store     storage.BadgerStore         // 必需
	WriteGate writegate.WriteGate         // 可选
	EventBus  event.EventBus              // 可选
	Options   *verifyconfig.VerifyOptions // 可选
	Logger    log.Logger                  // 可选
}

// Service 链状态服务
type Service struct {
	store    storage.BadgerStore
	gate     writegate.WriteGate
	eventBus event.EventBus
	logger   log.Logger

	mu  sync.RWMutex
	idx *chainIndex
}

var (
	_ verifyiface.ChainState = (*Service)(nil)
	_ metrics.MemoryReporter = (*Service)(nil)
)

// NewService 创建链状态服务并从存储加载索引
//
// 配置了创世区块文件时：存储为空则写入创世区块；存储非空则要求高度0的区块与之一致。
func NewService(ctx context.Context, deps Dependencies) (*Service, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("store 不能为空")
	}
	opts := deps.Options
	if opts == nil {
		opts = verifyconfig.DefaultOptions()
	}

	s := &Service{
		store:    deps.Store,
		gate:     deps.WriteGate,
		eventBus: deps.EventBus,
		logger:   deps.Logger,
		idx:      newChainIndex(),
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	if opts.GenesisFile != "" {
		genesis, err := LoadGenesisFile(opts.GenesisFile)
		if err != nil {
			return nil, err
		}
		if err := s.installGenesis(ctx, genesis); err != nil {
			return nil, err
		}
	}

	initChainMetrics()
	if _, height, ok := s.Tip(ctx); ok {
		chainHeightGauge.Set(float64(height))
	}
	return s, nil
}

// LoadGenesisFile 从 JSON 文件读取创世区块
func LoadGenesisFile(path string) (*types.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取创世区块文件失败: %w", err)
	}
	var genesis types.Block
	if err := json.Unmarshal(data, &genesis); err != nil {
		return nil, fmt.Errorf("解析创世区块文件失败: %w", err)
	}
	if genesis.Header == nil || genesis.Header.Height != 0 || !genesis.Header.PreviousHash.IsZero() {
		return nil, fmt.Errorf("创世区块必须是高度0且父哈希为零的区块")
	}
	return &genesis, nil
}

func (s *Service) installGenesis(ctx context.Context, genesis *types.Block) error {
	s.mu.RLock()
	empty := s.idx.empty()
	var stored types.Hash
	if !empty {
		stored = s.idx.byHeight[0]
	}
	s.mu.RUnlock()

	if !empty {
		if stored != genesis.Hash() {
			return fmt.Errorf("%w: 存储=%s, 配置=%s", ErrGenesisMismatch, stored, genesis.Hash())
		}
		return nil
	}
	if err := s.Commit(ctx, genesis); err != nil {
		return fmt.Errorf("写入创世区块失败: %w", err)
	}
	if s.logger != nil {
		s.logger.Infof("创世区块已写入: hash=%s", genesis.Hash())
	}
	return nil
}

// load 按高度顺序重放存储中的区块重建索引
func (s *Service) load(ctx context.Context) error {
	entries, err := s.store.PrefixScan(ctx, heightKeyPrefix)
	if err != nil {
		return fmt.Errorf("扫描高度索引失败: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	heights := make([]uint64, 0, len(entries))
	hashes := make(map[uint64]types.Hash, len(entries))
	for key, value := range entries {
		height, err := parseHeightKey([]byte(key))
		if err != nil {
			return err
		}
		hash, err := types.BytesToHash(value)
		if err != nil {
			return fmt.Errorf("%w: 高度%d: %v", ErrCorruptIndex, height, err)
		}
		heights = append(heights, height)
		hashes[height] = hash
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })

	idx := newChainIndex()
	for i, height := range heights {
		if height != uint64(i) {
			return fmt.Errorf("%w: 高度索引不连续，缺少高度%d", ErrCorruptIndex, i)
		}
		block, err := s.readBlock(ctx, hashes[height])
		if err != nil {
			return fmt.Errorf("加载高度%d的区块失败: %w", height, err)
		}
		if err := idx.check(block); err != nil {
			return fmt.Errorf("%w: 高度%d: %v", ErrCorruptIndex, height, err)
		}
		idx.apply(block)
	}

	tipHash, _, _ := idx.tip()
	storedTip, err := s.store.Get(ctx, tipKey)
	if err != nil {
		return fmt.Errorf("读取链尖失败: %w", err)
	}
	if string(storedTip) != string(tipHash[:]) {
		return fmt.Errorf("%w: 链尖记录与高度索引不一致", ErrCorruptIndex)
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Infof("链状态已加载: height=%d tip=%s utxo=%d", len(heights)-1, tipHash, len(idx.utxo))
	}
	return nil
}

// ValidateContext 实现 ContextualValidator
func (s *Service) ValidateContext(ctx context.Context, block *types.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.check(block)
}

// Commit 实现 Committer
func (s *Service) Commit(ctx context.Context, block *types.Block) error {
	if s.gate != nil {
		if err := s.gate.AssertWriteAllowed(ctx, commitOp); err != nil {
			return err
		}
	}
	if block == nil || block.Header == nil {
		return ErrNilBlock
	}
	record, err := encodeBlock(block)
	if err != nil {
		return err
	}
	hash := block.Hash()

	s.mu.Lock()
	if err := s.idx.check(block); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrCommitConflict, err)
	}

	err = s.store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		if err := tx.Set(blockKey(hash), record); err != nil {
			return fmt.Errorf("写入区块记录失败: %w", err)
		}
		if err := tx.Set(heightKey(block.Header.Height), hash[:]); err != nil {
			return fmt.Errorf("写入高度索引失败: %w", err)
		}
		if err := tx.Set(tipKey, hash[:]); err != nil {
			return fmt.Errorf("写入链尖失败: %w", err)
		}
		return nil
	})
	if err != nil {
		s.mu.Unlock()
		if s.gate != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			s.gate.EnterReadOnly(fmt.Sprintf("链状态持久化失败: %v", err))
		}
		if s.logger != nil {
			s.logger.Errorf("❌ 区块持久化失败: hash=%s height=%d err=%v", hash, block.Header.Height, err)
		}
		return fmt.Errorf("持久化区块失败: %w", err)
	}

	s.idx.apply(block)
	s.mu.Unlock()

	chainHeightGauge.Set(float64(block.Header.Height))
	if s.eventBus != nil {
		s.eventBus.Publish(event.EventTypeChainTipChanged, &verifyiface.ChainTip{Hash: hash, Height: block.Header.Height})
	}
	if s.logger != nil {
		s.logger.Debugf("区块已提交: hash=%s height=%d", hash, block.Header.Height)
	}
	return nil
}

// Tip 实现 ChainReader
func (s *Service) Tip(ctx context.Context) (types.Hash, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, header, ok := s.idx.tip()
	if !ok {
		return types.Hash{}, 0, false
	}
	return hash, header.Height, true
}

// GetBlock 实现 ChainReader，区块不存在时返回 ErrBlockNotFound
func (s *Service) GetBlock(ctx context.Context, hash types.Hash) (*types.Block, error) {
	s.mu.RLock()
	_, known := s.idx.headers[hash]
	s.mu.RUnlock()
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, hash)
	}
	return s.readBlock(ctx, hash)
}

// GetBlockByHeight 按主链高度读取区块
func (s *Service) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	s.mu.RLock()
	if height >= uint64(len(s.idx.byHeight)) {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: height=%d", ErrBlockNotFound, height)
	}
	hash := s.idx.byHeight[height]
	s.mu.RUnlock()
	return s.readBlock(ctx, hash)
}

// IsUnspent 输出是否在未花费集合中
func (s *Service) IsUnspent(op types.OutPoint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.idx.utxo[op]
	return ok
}

func (s *Service) readBlock(ctx context.Context, hash types.Hash) (*types.Block, error) {
	data, err := s.store.Get(ctx, blockKey(hash))
	if err != nil {
		return nil, fmt.Errorf("读取区块记录失败: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, hash)
	}
	block, err := decodeBlock(data)
	if err != nil {
		return nil, err
	}
	if got := block.Hash(); got != hash {
		return nil, fmt.Errorf("%w: 记录哈希=%s, 键哈希=%s", ErrCorruptIndex, got, hash)
	}
	return block, nil
}

// ==================== 内存上报 ====================

// ModuleName 实现 MemoryReporter
func (s *Service) ModuleName() string { return moduleName }

// CollectMemoryStats 实现 MemoryReporter
//
// Objects 为已索引区块数，CacheItems 为未花费输出数。
func (s *Service) CollectMemoryStats() metrics.ModuleMemoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blocks := int64(len(s.idx.byHeight))
	utxo := int64(len(s.idx.utxo))
	spent := int64(len(s.idx.spent))
	return metrics.ModuleMemoryStats{
		Module:      moduleName,
		Objects:     blocks,
		ApproxBytes: blocks*(types.HashLength*3+64) + utxo*(types.HashLength+12) + spent*(types.HashLength+4),
		CacheItems:  utxo,
	}
}
