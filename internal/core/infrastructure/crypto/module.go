// Package crypto 提供加密相关功能
package crypto

import (
	"go.uber.org/fx"

	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto/pow"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Logger        log.Logger                  `optional:"true"` // 日志记录器
	VerifyOptions *verifyconfig.VerifyOptions `optional:"true"` // 验证配置（提供难度上限）
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	HashManager       crypto.HashManager
	BlockHashManager  crypto.BlockHashManager
	MerkleTreeManager crypto.MerkleTreeManager
	POWEngine         crypto.POWEngine
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	powConfig := pow.DefaultConfig()
	if params.VerifyOptions != nil && params.VerifyOptions.MaxDifficulty > 0 {
		powConfig.MaxDifficulty = params.VerifyOptions.MaxDifficulty
	}

	serviceOutput, err := CreateCryptoServices(ServiceInput{
		Logger:    params.Logger,
		POWConfig: powConfig,
	})
	if err != nil {
		return CryptoOutput{}, err
	}

	return CryptoOutput{
		HashManager:       serviceOutput.HashManager,
		BlockHashManager:  serviceOutput.BlockHashManager,
		MerkleTreeManager: serviceOutput.MerkleTreeManager,
		POWEngine:         serviceOutput.POWEngine,
	}, nil
}
