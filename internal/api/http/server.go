// Package http 提供区块验证服务的 HTTP API
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/blockverify/internal/api/http/handlers"
	"github.com/weisyn/blockverify/internal/api/http/middleware"
	"github.com/weisyn/blockverify/internal/api/websocket"
	apiconfig "github.com/weisyn/blockverify/internal/config/api"
	logimpl "github.com/weisyn/blockverify/internal/core/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/writegate"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// Dependencies HTTP 服务器依赖
type Dependencies struct {
	Options   *apiconfig.APIOptions  // 必需
	Verifier  handlers.BatchVerifier // 必需：验证流水线
	Chain     verify.ChainReader     // 必需：链状态查询
	WriteGate writegate.WriteGate    // 可选：健康检查展示只读状态
	WebSocket *websocket.Server      // 可选：为空时不注册推送路由
	Logger    log.Logger             // 可选
}

// Server HTTP服务器
//
// 路由一览：
//
//	POST /v1/blocks            Commit
//	POST /v1/blocks/reduced    ReducedValidation
//	POST /v1/blocks/proposal   CheckProposal（仅 getblocktemplate 构建）
//	POST /v1/blocks/batch      批量提交
//	GET  /v1/chain/tip         链尖
//	GET  /v1/chain/blocks/:hash
//	GET  /v1/intents           当前构建支持的意图
//	GET  /v1/ws/outcomes       验证结果推送
//	GET  /healthz  /metrics
type Server struct {
	router  *gin.Engine
	opts    *apiconfig.APIOptions
	logger  log.Logger
	ws      *websocket.Server
	mu      sync.Mutex
	srv     *http.Server
	addr    net.Addr
	serveWg sync.WaitGroup
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(deps Dependencies) (*Server, error) {
	if deps.Options == nil || deps.Verifier == nil || deps.Chain == nil {
		return nil, errors.New("http server: Options/Verifier/Chain 为必需依赖")
	}
	logger := logimpl.NewModuleLogger(deps.Logger, "api.http")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.NewRequestID().Middleware(),
		middleware.NewLogger(logger).Middleware(),
		middleware.NewMetrics().Middleware(),
		middleware.ErrorHandler(logger),
	)

	s := &Server{router: router, opts: deps.Options, logger: logger, ws: deps.WebSocket}
	s.setupRoutes(deps)
	return s, nil
}

func (s *Server) setupRoutes(deps Dependencies) {
	submissions := handlers.NewSubmissionHandlers(deps.Verifier, s.opts.HTTP.MaxRequestSize, s.logger)
	chain := handlers.NewChainHandlers(deps.Chain)
	health := handlers.NewHealthHandler(deps.Chain, deps.WriteGate)

	v1 := s.router.Group("/v1")
	v1.POST("/blocks", submissions.SubmitCommit)
	v1.POST("/blocks/reduced", submissions.SubmitReduced)
	v1.POST("/blocks/batch", submissions.SubmitBatch)
	submissions.RegisterProposalRoute(v1)

	v1.GET("/chain/tip", chain.GetTip)
	v1.GET("/chain/blocks/:hash", chain.GetBlock)
	v1.GET("/intents", handlers.GetIntents)

	if s.ws != nil && s.opts.WebSocket.Enabled {
		s.ws.RegisterRoutes(v1)
	}

	s.router.GET("/healthz", health.GetHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler 返回路由处理器（测试使用）
func (s *Server) Handler() http.Handler { return s.router }

// Addr 返回实际监听地址，未启动时为 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start 启动HTTP服务器
//
// 先同步完成端口监听，监听失败直接返回错误；之后在后台协程中处理请求。
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return nil
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("HTTP服务器监听 %s 失败: %w", s.opts.HTTP.Addr, err)
	}

	if s.ws != nil && s.opts.WebSocket.Enabled {
		if err := s.ws.Start(); err != nil {
			_ = ln.Close()
			return fmt.Errorf("启动验证结果推送失败: %w", err)
		}
	}

	s.srv = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.HTTP.ReadTimeout,
		WriteTimeout: s.opts.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	s.addr = ln.Addr()

	srv := s.srv
	s.serveWg.Add(1)
	go func() {
		defer s.serveWg.Done()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("❌ HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("✅ HTTP服务器启动成功，监听地址: %s", s.addr)
	return nil
}

// Stop 优雅关闭HTTP服务器，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.addr = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	if s.ws != nil {
		s.ws.Stop()
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := srv.Shutdown(stopCtx)
	s.serveWg.Wait()
	if err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}
	s.logger.Info("HTTP服务器已关闭")
	return nil
}
