// Package verify 组装区块验证模块：语义验证器、链状态与分发流水线
package verify

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	logimpl "github.com/weisyn/blockverify/internal/core/infrastructure/log"
	"github.com/weisyn/blockverify/internal/core/verify/chainstate"
	"github.com/weisyn/blockverify/internal/core/verify/pipeline"
	"github.com/weisyn/blockverify/internal/core/verify/semantic"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	metricsutil "github.com/weisyn/blockverify/pkg/utils/metrics"
)

// ModuleInput 验证模块输入依赖
type ModuleInput struct {
	fx.In

	Options     *verifyconfig.VerifyOptions
	BlockHasher crypto.BlockHashManager
	Merkle      crypto.MerkleTreeManager
	POW         crypto.POWEngine
	Clock       clock.Clock
	BadgerStore storage.BadgerStore

	MemoryStore storage.MemoryStore `optional:"true"`
	WriteGate   writegate.WriteGate `optional:"true"`
	EventBus    event.EventBus      `optional:"true"`
	Logger      log.Logger          `optional:"true"`
}

// ModuleOutput 验证模块输出服务
type ModuleOutput struct {
	fx.Out

	Semantic   verifyiface.SemanticValidator
	ChainState verifyiface.ChainState
	Verifier   verifyiface.Verifier
	Pipeline   *pipeline.Service
}

// Module 返回验证模块
func Module() fx.Option {
	return fx.Module("verify",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建验证服务并注册内存上报
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	sem, err := semantic.NewService(semantic.Dependencies{
		BlockHasher: input.BlockHasher,
		Merkle:      input.Merkle,
		POW:         input.POW,
		Clock:       input.Clock,
		Cache:       input.MemoryStore,
		Options:     input.Options,
		Logger:      logimpl.NewModuleLogger(input.Logger, "verify.semantic"),
	})
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建语义验证器失败: %w", err)
	}

	chain, err := chainstate.NewService(context.Background(), chainstate.Dependencies{
		Store:     input.BadgerStore,
		WriteGate: input.WriteGate,
		EventBus:  input.EventBus,
		Options:   input.Options,
		Logger:    logimpl.NewModuleLogger(input.Logger, "verify.chainstate"),
	})
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建链状态失败: %w", err)
	}

	pipe, err := pipeline.NewService(pipeline.Dependencies{
		Semantic: sem,
		Chain:    chain,
		EventBus: input.EventBus,
		Options:  input.Options,
		Logger:   logimpl.NewModuleLogger(input.Logger, "verify.pipeline"),
	})
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建验证流水线失败: %w", err)
	}

	metricsutil.RegisterMemoryReporter(sem)
	metricsutil.RegisterMemoryReporter(chain)

	return ModuleOutput{
		Semantic:   sem,
		ChainState: chain,
		Verifier:   pipe,
		Pipeline:   pipe,
	}, nil
}
