// Package websocket 提供验证结果的实时推送
package websocket

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weisyn/blockverify/internal/api/websocket/types"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	metricsiface "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/metrics"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// Options 推送服务参数
type Options struct {
	BufferSize   int           // 每个连接的待发送队列容量
	WriteTimeout time.Duration // 单条消息写超时
	PingInterval time.Duration // 心跳间隔
}

const (
	defaultBufferSize   = 256
	defaultWriteTimeout = 10 * time.Second
	defaultPingInterval = 30 * time.Second
)

// Server 验证结果推送服务
//
// 🔌 服务在事件总线上为每种终态事件只注册一个处理器，
// 再把结果分发给所有连接。每个连接拥有独立的有界队列，
// 队列满时丢弃最旧的消息，慢连接不会阻塞流水线。
type Server struct {
	logger   *zap.Logger
	eventBus event.EventBus
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}

	// subMu 与 mu 分离：事件总线在持有自身锁时同步调用 broadcast
	subMu    sync.Mutex
	started  bool
	handlers map[event.EventType]func(*verify.Outcome)
}

// NewServer 创建推送服务，logger 为空时不输出日志
func NewServer(logger *zap.Logger, eventBus event.EventBus, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	s := &Server{
		logger:   logger,
		eventBus: eventBus,
		opts:     opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients:  make(map[*client]struct{}),
		handlers: make(map[event.EventType]func(*verify.Outcome)),
	}
	for _, et := range event.OutcomeEventTypes {
		eventType := et
		s.handlers[eventType] = func(out *verify.Outcome) { s.broadcast(eventType, out) }
	}
	return s
}

// Start 在事件总线上注册终态事件处理器
func (s *Server) Start() error {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.started || s.eventBus == nil {
		return nil
	}
	for et, h := range s.handlers {
		if err := s.eventBus.Subscribe(et, h); err != nil {
			return err
		}
	}
	s.started = true
	return nil
}

// Stop 取消事件订阅并关闭所有连接
func (s *Server) Stop() {
	s.subMu.Lock()
	if s.started {
		for et, h := range s.handlers {
			if err := s.eventBus.Unsubscribe(et, h); err != nil {
				s.logger.Warn("取消订阅失败", zap.String("event", string(et)), zap.Error(err))
			}
		}
		s.started = false
	}
	s.subMu.Unlock()

	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

// HandleOutcomes GET /v1/ws/outcomes?intent=&state=
func (s *Server) HandleOutcomes(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.Intent != "" {
		// 别名统一为规范名称
		intent, err := request.ParseIntent(filter.Intent)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Intent = intent.String()
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}

	cl := newClient(conn, filter, s.opts.BufferSize)
	s.register(cl)
	s.logger.Info("WebSocket 订阅已建立",
		zap.String("remote_addr", conn.RemoteAddr().String()),
		zap.String("intent", filter.Intent),
		zap.String("state", filter.State))

	go s.readLoop(cl)
	s.writeLoop(cl)

	s.unregister(cl)
	s.logger.Info("WebSocket 订阅已关闭", zap.String("remote_addr", conn.RemoteAddr().String()))
}

// RegisterRoutes 注册推送路由
func (s *Server) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/ws/outcomes", s.HandleOutcomes)
}

// ConnectionCount 当前连接数
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
}

func (s *Server) broadcast(eventType event.EventType, out *verify.Outcome) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		if c.filter.Match(out) {
			c.enqueue(&types.OutcomeMessage{Type: string(eventType), Outcome: out})
		}
	}
}

// readLoop 只负责感知对端关闭，客户端发送的消息一律忽略
func (s *Server) readLoop(c *client) {
	defer c.close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket 连接异常断开", zap.Error(err))
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(s.opts.WriteTimeout))
			return
		case msg := <-c.send:
			msg.Dropped = c.dropped.Swap(0)
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				s.logger.Warn("推送验证结果失败", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ============================================================================
// 连接
// ============================================================================

type client struct {
	conn    *websocket.Conn
	filter  types.Filter
	send    chan *types.OutcomeMessage
	dropped atomic.Uint64

	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, filter types.Filter, buffer int) *client {
	return &client{
		conn:   conn,
		filter: filter,
		send:   make(chan *types.OutcomeMessage, buffer),
		done:   make(chan struct{}),
	}
}

// enqueue 非阻塞入队，队列满时丢弃最旧的一条
func (c *client) enqueue(msg *types.OutcomeMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		select {
		case c.send <- msg:
			return
		default:
		}
		select {
		case <-c.send:
			c.dropped.Add(1)
		default:
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// ============================================================================
// 内存监控接口实现（MemoryReporter）
// ============================================================================

// ModuleName 返回模块名称（实现 MemoryReporter 接口）
func (s *Server) ModuleName() string {
	return "api.websocket"
}

// CollectMemoryStats 收集推送服务的内存统计信息（实现 MemoryReporter 接口）
//
// 映射规则：
// - Objects: 活跃连接数
// - ApproxBytes: 按读写缓冲区估算
// - CacheItems: 所有连接待发送消息总数
func (s *Server) CollectMemoryStats() metricsiface.ModuleMemoryStats {
	s.mu.RLock()
	conns := int64(len(s.clients))
	var queued int64
	for c := range s.clients {
		queued += int64(len(c.send))
	}
	s.mu.RUnlock()

	return metricsiface.ModuleMemoryStats{
		Module:      "api.websocket",
		Objects:     conns,
		ApproxBytes: conns * int64(s.upgrader.ReadBufferSize+s.upgrader.WriteBufferSize),
		CacheItems:  queued,
	}
}
