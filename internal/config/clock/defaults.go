// Package clock provides default configuration values for clock service.
package clock

import "time"

// 时钟服务配置默认值
const (
	// defaultType 默认使用系统时钟
	defaultType = "system"

	// defaultNTPServer 默认NTP服务器
	defaultNTPServer = "time.google.com"
)

var (
	// defaultSyncInterval NTP 偏移量刷新间隔
	defaultSyncInterval = 5 * time.Minute

	// defaultQueryTimeout 单次 NTP 查询超时
	defaultQueryTimeout = 3 * time.Second
)
