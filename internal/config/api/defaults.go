package api

import "time"

// API服务默认配置值
const (
	// defaultHTTPEnabled 默认启用HTTP API
	defaultHTTPEnabled = true

	// defaultHTTPAddr 默认监听所有网卡的 28680 端口
	defaultHTTPAddr = ":28680"

	// defaultHTTPReadTimeout HTTP读取超时
	defaultHTTPReadTimeout = 15 * time.Second

	// defaultHTTPWriteTimeout HTTP写入超时
	defaultHTTPWriteTimeout = 15 * time.Second

	// defaultMaxRequestSize 最大请求大小 4MB
	defaultMaxRequestSize = 4 * 1024 * 1024

	// defaultWebSocketEnabled 默认启用结果推送
	defaultWebSocketEnabled = true

	// defaultWebSocketWriteTimeout 推送写超时
	defaultWebSocketWriteTimeout = 10 * time.Second

	// defaultWebSocketPingInterval 心跳间隔
	defaultWebSocketPingInterval = 30 * time.Second
)
