// Package memory 提供基于BigCache的内存缓存实现
package memory

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"

	memoryconfig "github.com/weisyn/blockverify/internal/config/storage/memory"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	storage "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
)

// expiryHeaderSize 每个条目前缀的过期时间戳长度（UnixNano，0表示使用缓存默认生命周期）
const expiryHeaderSize = 8

// ErrStoreClosed 缓存已关闭
var ErrStoreClosed = errors.New("内存存储已关闭")

var _ storage.MemoryStore = (*Store)(nil)

// Store 实现了MemoryStore接口，基于BigCache提供内存缓存功能
type Store struct {
	cache  *bigcache.BigCache
	logger log.Logger
	config *memoryconfig.Config
	now    func() time.Time

	mutex  sync.RWMutex
	closed bool
}

// New 创建一个新的BigCache内存存储实例
func New(config *memoryconfig.Config, logger log.Logger) (*Store, error) {
	if config == nil {
		config = memoryconfig.New(nil)
	}

	bigCacheConfig := bigcache.DefaultConfig(config.GetLifeWindow())
	bigCacheConfig.MaxEntriesInWindow = config.GetMaxEntriesInWindow()
	bigCacheConfig.MaxEntrySize = config.GetMaxEntrySize() + expiryHeaderSize
	bigCacheConfig.Shards = 256
	bigCacheConfig.CleanWindow = config.GetCleanWindow()
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("创建BigCache实例失败: %w", err)
	}

	return &Store{
		cache:  cache,
		logger: logger,
		config: config,
		now:    time.Now,
	}, nil
}

// Close 关闭缓存并释放资源
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	if err := s.cache.Close(); err != nil {
		return err
	}
	s.closed = true
	if s.logger != nil {
		s.logger.Info("内存存储已关闭")
	}
	return nil
}

// Get 获取缓存值，过期条目视为不存在并被顺带删除
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return nil, false, ErrStoreClosed
	}

	raw, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("获取缓存键[%s]失败: %w", key, err)
	}
	if len(raw) < expiryHeaderSize {
		_ = s.cache.Delete(key)
		return nil, false, nil
	}

	expiry := int64(binary.BigEndian.Uint64(raw[:expiryHeaderSize]))
	if expiry != 0 && s.now().UnixNano() >= expiry {
		_ = s.cache.Delete(key)
		return nil, false, nil
	}

	value := make([]byte, len(raw)-expiryHeaderSize)
	copy(value, raw[expiryHeaderSize:])
	return value, true, nil
}

// Set 设置缓存值，ttl<=0 时使用缓存默认生命周期
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	entry := make([]byte, expiryHeaderSize+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(entry[:expiryHeaderSize], uint64(s.now().Add(ttl).UnixNano()))
	}
	copy(entry[expiryHeaderSize:], value)

	if err := s.cache.Set(key, entry); err != nil {
		return fmt.Errorf("设置缓存键[%s]失败: %w", key, err)
	}
	return nil
}

// Delete 删除指定键的缓存，键不存在时不返回错误
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("删除缓存键[%s]失败: %w", key, err)
	}
	return nil
}

// Count 当前条目数（包含尚未清理的过期条目）
func (s *Store) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return 0
	}
	return s.cache.Len()
}

// Stats 返回 BigCache 命中统计
func (s *Store) Stats() bigcache.Stats {
	return s.cache.Stats()
}
