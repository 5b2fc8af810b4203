package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/weisyn/blockverify/internal/api"
	config "github.com/weisyn/blockverify/internal/config"
	"github.com/weisyn/blockverify/internal/core/infrastructure/clock"
	"github.com/weisyn/blockverify/internal/core/infrastructure/crypto"
	"github.com/weisyn/blockverify/internal/core/infrastructure/event"
	log "github.com/weisyn/blockverify/internal/core/infrastructure/log"
	"github.com/weisyn/blockverify/internal/core/infrastructure/metrics"
	"github.com/weisyn/blockverify/internal/core/infrastructure/storage"
	"github.com/weisyn/blockverify/internal/core/infrastructure/writegate"
	"github.com/weisyn/blockverify/internal/core/verify"
	"github.com/weisyn/blockverify/internal/core/verify/pipeline"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// ============================================================================
// 分层启动
// ============================================================================
//
// 基础设施层 → 通信层 → 业务层 → 应用层，每层只依赖下层提供的服务。
// fx 根据依赖图决定实际构造顺序，分层只用于组织模块列表。

// Bootstrap 应用启动器
type Bootstrap struct {
	opts      *options
	appConfig *types.AppConfig
	fxApp     *fx.App

	pipeline *pipeline.Service
	chain    verifyiface.ChainState
}

// NewBootstrap 创建启动器
func NewBootstrap(opts *options, appConfig *types.AppConfig) *Bootstrap {
	return &Bootstrap{opts: opts, appConfig: appConfig}
}

// SetupInfrastructureLayer 配置、日志、时钟、密码学、写门闸、指标
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Supply(b.appConfig),
		config.Module(),    // 1. 配置(不依赖其他)
		log.Module(),       // 2. 日志(依赖配置)
		clock.Module(),     // 3. 时钟(依赖配置)
		crypto.Module(),    // 4. 密码学(依赖验证配置)
		writegate.Module(), // 5. 写门闸
		metrics.Module(),   // 6. 模块内存指标
	}
}

// SetupCommunicationLayer 事件总线与存储
func (b *Bootstrap) SetupCommunicationLayer() []fx.Option {
	return []fx.Option{
		event.Module(),   // 事件(依赖基础设施)
		storage.Module(), // 存储(依赖基础设施)
	}
}

// SetupBusinessLayer 区块验证
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		verify.Module(), // 语义验证、链状态、验证流水线
		fx.Populate(&b.pipeline, &b.chain),
	}
}

// SetupApplicationLayer 对外 API
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	if !b.opts.enableAPI {
		return nil
	}
	return []fx.Option{api.Module()}
}

// SetupModules 组装全部模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var all []fx.Option
	all = append(all, b.SetupInfrastructureLayer()...)
	all = append(all, b.SetupCommunicationLayer()...)
	all = append(all, b.SetupBusinessLayer()...)
	all = append(all, b.SetupApplicationLayer()...)
	return all
}

// CreateFxApp 创建 fx 应用并检查依赖图
func (b *Bootstrap) CreateFxApp() error {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("依赖注入失败: %w", err)
	}
	return nil
}

// StartApp 启动应用
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}
