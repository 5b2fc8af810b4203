package http

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/weisyn/blockverify/internal/api/websocket"
	"github.com/weisyn/blockverify/internal/core/verify/pipeline"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
	metricsutil "github.com/weisyn/blockverify/pkg/utils/metrics"
)

// ModuleInput HTTP 模块输入依赖
type ModuleInput struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Provider   config.Provider
	Pipeline   *pipeline.Service
	ChainState verify.ChainState
	EventBus   event.EventBus      `optional:"true"`
	WriteGate  writegate.WriteGate `optional:"true"`
	Logger     log.Logger          `optional:"true"`
}

// ModuleOutput HTTP 模块输出
type ModuleOutput struct {
	fx.Out

	Server    *Server
	WebSocket *websocket.Server
}

// Module 返回 HTTP API 模块
func Module() fx.Option {
	return fx.Module("api.http",
		fx.Provide(ProvideServer),
		fx.Invoke(func(*Server) {}),
	)
}

// ProvideServer 创建 HTTP 服务器并挂接生命周期
//
// HTTP 未启用时仍然创建服务器（便于 CLI 复用路由），但不监听端口。
func ProvideServer(in ModuleInput) (ModuleOutput, error) {
	opts := in.Provider.GetAPI()

	var bufferSize int
	if evOpts := in.Provider.GetEvent(); evOpts != nil {
		bufferSize = evOpts.BufferSize
	}

	var zapLogger *zap.Logger
	if in.Logger != nil {
		zapLogger = in.Logger.GetZapLogger().Named("api.websocket")
	}
	ws := websocket.NewServer(zapLogger, in.EventBus, websocket.Options{
		BufferSize:   bufferSize,
		WriteTimeout: opts.WebSocket.WriteTimeout,
		PingInterval: opts.WebSocket.PingInterval,
	})
	metricsutil.RegisterMemoryReporter(ws)

	server, err := NewServer(Dependencies{
		Options:   opts,
		Verifier:  in.Pipeline,
		Chain:     in.ChainState,
		WriteGate: in.WriteGate,
		WebSocket: ws,
		Logger:    in.Logger,
	})
	if err != nil {
		return ModuleOutput{}, err
	}

	if opts.HTTP.Enabled {
		in.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error { return server.Start(ctx) },
			OnStop:  func(ctx context.Context) error { return server.Stop(ctx) },
		})
	}

	return ModuleOutput{Server: server, WebSocket: ws}, nil
}
