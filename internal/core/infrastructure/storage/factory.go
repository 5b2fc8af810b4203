// Package storage 提供存储服务工厂实现
package storage

import (
	"fmt"
	"path/filepath"

	badgerconfig "github.com/weisyn/blockverify/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/blockverify/internal/config/storage/memory"
	"github.com/weisyn/blockverify/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/blockverify/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义存储服务工厂的输入参数
type ServiceInput struct {
	Provider config.Provider // 配置提供者
	Logger   log.Logger      // 日志记录器（可选）
}

// ServiceOutput 定义存储服务工厂的输出结果
type ServiceOutput struct {
	BadgerStore *badger.Store
	MemoryStore *memory.Store
}

// CreateStorageServices 创建存储服务
//
// BadgerDB 是必需的，打开失败即返回错误；
// 内存缓存初始化失败只记录警告，语义验证器在没有缓存时照常工作。
func CreateStorageServices(input ServiceInput) (ServiceOutput, error) {
	var storageLogger log.Logger
	if input.Logger != nil {
		storageLogger = input.Logger.With("module", "storage")
	}

	badgerCfg := badgerconfig.NewFromOptions(input.Provider.GetBadger())
	memoryCfg := memoryconfig.NewFromOptions(input.Provider.GetMemory())

	badgerStore, err := badger.New(badgerCfg, storageLogger)
	if err != nil {
		return ServiceOutput{}, fmt.Errorf("存储初始化失败：%w", err)
	}

	if storageLogger != nil {
		if badgerCfg.IsInMemory() {
			storageLogger.Info("✅ BadgerDB存储初始化成功（内存模式）")
		} else {
			absPath, absErr := filepath.Abs(badgerCfg.GetPath())
			if absErr != nil {
				absPath = badgerCfg.GetPath()
			}
			storageLogger.Infof("✅ BadgerDB存储初始化成功")
			storageLogger.Infof("📁 数据存储路径: %s", absPath)
		}
	}

	memoryStore, err := memory.New(memoryCfg, storageLogger)
	if err != nil {
		if storageLogger != nil {
			storageLogger.Warnf("内存存储初始化失败，将影响缓存功能: %v", err)
		}
		memoryStore = nil
	} else if storageLogger != nil {
		storageLogger.Info("✅ 内存存储初始化成功")
	}

	return ServiceOutput{
		BadgerStore: badgerStore,
		MemoryStore: memoryStore,
	}, nil
}
