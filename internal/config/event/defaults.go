package event

// 事件系统默认配置值
const (
	// defaultEnabled 默认启用事件系统
	defaultEnabled = true

	// defaultBufferSize 每个订阅连接缓冲 256 个事件，超出时丢弃最旧的推送
	defaultBufferSize = 256
)
