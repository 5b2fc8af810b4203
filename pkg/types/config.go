package types

// AppConfig 应用程序配置（对应 JSON 配置文件的根结构）
//
// 所有字段均为指针：只有配置文件中实际出现的字段会覆盖默认值，
// 默认值由 internal/config 下各子配置包的 defaults.go 提供。
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty"`

	Log     *UserLogConfig     `json:"log,omitempty"`     // 日志配置
	Clock   *UserClockConfig   `json:"clock,omitempty"`   // 时钟配置
	Event   *UserEventConfig   `json:"event,omitempty"`   // 事件总线配置
	Storage *UserStorageConfig `json:"storage,omitempty"` // 存储配置
	Verify  *UserVerifyConfig  `json:"verify,omitempty"`  // 区块验证配置
	API     *UserAPIConfig     `json:"api,omitempty"`     // API 配置
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径（stdout/stderr 表示控制台）
}

// UserClockConfig 用户时钟配置
type UserClockConfig struct {
	Type           *string `json:"type,omitempty"`             // system | ntp
	NTPServer      *string `json:"ntp_server,omitempty"`       // NTP 服务器
	SyncIntervalMs *int64  `json:"sync_interval_ms,omitempty"` // NTP 同步间隔（毫秒）
}

// UserEventConfig 用户事件配置
type UserEventConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // 是否启用事件总线
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	Badger *UserBadgerConfig `json:"badger,omitempty"`
	Memory *UserMemoryConfig `json:"memory,omitempty"`
}

// UserBadgerConfig 用户 BadgerDB 配置
type UserBadgerConfig struct {
	Path       *string `json:"path,omitempty"`        // 数据目录
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 是否同步写入
	InMemory   *bool   `json:"in_memory,omitempty"`   // 是否使用纯内存模式（测试/演示）
}

// UserMemoryConfig 用户内存缓存配置
type UserMemoryConfig struct {
	LifeWindow   *string `json:"life_window,omitempty"`    // 条目生命周期，如 "10m"
	CleanWindow  *string `json:"clean_window,omitempty"`   // 清理周期，如 "5m"
	MaxEntrySize *int    `json:"max_entry_size,omitempty"` // 单条目最大字节数
}

// UserVerifyConfig 用户区块验证配置
type UserVerifyConfig struct {
	MaxConcurrency        *int    `json:"max_concurrency,omitempty"`          // 批量验证并发上限
	MaxFutureDriftSeconds *uint64 `json:"max_future_drift_seconds,omitempty"` // 区块时间允许超前的秒数
	MaxBlockVersion       *uint32 `json:"max_block_version,omitempty"`        // 支持的最高区块版本
	MaxBlockTransactions  *int    `json:"max_block_transactions,omitempty"`   // 单区块交易数上限
	GenesisFile           *string `json:"genesis_file,omitempty"`             // 创世区块 JSON 文件
}

// UserAPIConfig 用户 API 配置
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用 HTTP API
	HTTPAddr    *string `json:"http_addr,omitempty"`    // 监听地址，如 ":28680"
}
