// Package app 组装并运行区块验证服务
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weisyn/blockverify/internal/core/verify/pipeline"
	verifyiface "github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// stopTimeout 停止应用的最长等待时间，留给 badger 完成落盘
const stopTimeout = 60 * time.Second

// App 是区块验证服务的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号，随后停止应用
	Wait() error

	// Pipeline 验证流水线
	Pipeline() *pipeline.Service

	// Chain 链状态
	Chain() verifyiface.ChainState
}

type internalApp struct {
	bootstrap *Bootstrap
}

// Start 组装全部模块并启动
func Start(ctx context.Context, appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)
	appConfig, err := opts.resolveAppConfig()
	if err != nil {
		return nil, err
	}

	b := NewBootstrap(opts, appConfig)
	if err := b.CreateFxApp(); err != nil {
		return nil, err
	}
	if err := b.StartApp(ctx); err != nil {
		return nil, err
	}
	return &internalApp{bootstrap: b}, nil
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待 SIGINT/SIGTERM
func (a *internalApp) Wait() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	<-signals
	return a.Stop()
}

func (a *internalApp) Pipeline() *pipeline.Service { return a.bootstrap.pipeline }

func (a *internalApp) Chain() verifyiface.ChainState { return a.bootstrap.chain }
