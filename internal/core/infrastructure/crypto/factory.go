// Package crypto 提供加密服务工厂实现
package crypto

import (
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/merkle"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/pow"
	"github.com/weisyn/blockverify/internal/core/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	Logger    logiface.Logger // 可选
	POWConfig *pow.Config     // 可选，nil 使用默认难度范围
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	HashManager       crypto.HashManager
	BlockHashManager  crypto.BlockHashManager
	MerkleTreeManager crypto.MerkleTreeManager
	POWEngine         crypto.POWEngine
}

// CreateCryptoServices 创建加密服务
//
// 依赖顺序：哈希服务 → 区块哈希服务 → Merkle 服务 / POW 引擎。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	var logger logiface.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "crypto")
	} else {
		logger = log.NewNop()
	}

	hashService := hash.NewHashService()
	blockHashService := hash.NewBlockHashService(hashService)

	merkleService, err := merkle.NewMerkleService(hashService, blockHashService)
	if err != nil {
		return ServiceOutput{}, err
	}

	powEngine, err := pow.NewEngine(hashService, logger, input.POWConfig)
	if err != nil {
		logger.Errorf("初始化POW引擎失败: %v", err)
		return ServiceOutput{}, err
	}

	logger.Info("✅ 加密模块所有服务初始化完成")

	return ServiceOutput{
		HashManager:       hashService,
		BlockHashManager:  blockHashService,
		MerkleTreeManager: merkleService,
		POWEngine:         powEngine,
	}, nil
}
