// Package clock 提供时间来源实现：系统时钟、NTP 校正时钟与测试用可控时钟
//
// 语义验证器用时钟判断区块时间戳是否超前过多，因此时钟来源决定了
// max_future_drift 的参照点：system 直接读本机时间，ntp 叠加与时间服务器的偏移。
package clock

import (
	"time"

	infraClock "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/clock"
)

// SystemClock 本机时间，不做任何校正
//
// clock.type 为 system，或 NTP 时钟无法创建时使用。
type SystemClock struct{}

var _ infraClock.Clock = (*SystemClock)(nil)

// NewSystemClock 创建本机时钟
func NewSystemClock() infraClock.Clock { return &SystemClock{} }

func (c *SystemClock) Now() time.Time                  { return time.Now() }
func (c *SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// Unix 区块时间戳使用的秒级时间
func (c *SystemClock) Unix() int64 { return time.Now().Unix() }
