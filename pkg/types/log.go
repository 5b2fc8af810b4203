package types

import "strings"

// LogLevel 日志级别，取值与配置文件 log.level 一致
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// ParseLogLevel 解析配置中的日志级别，忽略大小写与首尾空白
func ParseLogLevel(s string) (LogLevel, bool) {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return level, true
	}
	return "", false
}
