// Package clock 定义时间来源接口
//
// 语义验证中的区块时间戳检查通过本接口获取“当前时间”，
// 以便在生产环境使用 NTP 校正的时钟，在测试中使用可控时钟。
package clock

import "time"

type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64
}
