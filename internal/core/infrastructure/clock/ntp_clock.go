package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	infraClock "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/clock"
)

// offsetQuery 查询本地时钟相对 NTP 服务器的偏移
type offsetQuery func(server string, timeout time.Duration) (time.Duration, error)

// queryNTP 通过 beevik/ntp 查询偏移
func queryNTP(server string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// NTPClock 通过NTP周期性校正偏移的时钟实现
//
// 同步失败时保留上一次的偏移并按指数退避重试，退避上限为同步间隔。
type NTPClock struct {
	mu sync.Mutex

	server       string
	timeout      time.Duration
	syncInterval time.Duration
	query        offsetQuery

	offset    time.Duration
	lastSync  time.Time
	lastTry   time.Time
	backoff   time.Duration
	lastError error
}

// NewNTPClock 创建NTP时钟
// server 例如 "time.google.com"，syncInterval 建议 5~10 分钟
func NewNTPClock(server string, syncInterval, timeout time.Duration) *NTPClock {
	return newNTPClock(server, syncInterval, timeout, queryNTP)
}

func newNTPClock(server string, syncInterval, timeout time.Duration, query offsetQuery) *NTPClock {
	c := &NTPClock{server: server, syncInterval: syncInterval, timeout: timeout, query: query}
	c.mu.Lock()
	// 初始化失败不致命，置零偏移，后续重试
	c.syncLocked(time.Now())
	c.mu.Unlock()
	return c
}

func (c *NTPClock) Now() time.Time {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maybeSyncLocked(now)
	return now.Add(c.offset)
}

func (c *NTPClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *NTPClock) Unix() int64                     { return c.Now().Unix() }

// Health 返回当前健康状态与关键指标：最近一次同步是否成功
func (c *NTPClock) Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError == nil, c.offset, c.lastSync, c.lastError
}

func (c *NTPClock) maybeSyncLocked(now time.Time) {
	effective := c.syncInterval
	if c.backoff > 0 {
		effective = c.backoff
	}
	if now.Sub(c.lastTry) < effective {
		return
	}
	c.syncLocked(now)
}

func (c *NTPClock) syncLocked(now time.Time) {
	c.lastTry = now
	offset, err := c.query(c.server, c.timeout)
	if err != nil {
		c.lastError = err
		switch {
		case c.backoff == 0:
			c.backoff = time.Second
		case c.backoff*2 > c.syncInterval:
			c.backoff = c.syncInterval
		default:
			c.backoff *= 2
		}
		return
	}
	c.offset = offset
	c.lastSync = now
	c.lastError = nil
	c.backoff = 0
}

var _ infraClock.Clock = (*NTPClock)(nil)
