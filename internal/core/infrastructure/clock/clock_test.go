package clock

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clockconfig "github.com/weisyn/blockverify/internal/config/clock"
)

// TestMockClock_Advance_MovesTime 测试可控时钟推进
func TestMockClock_Advance_MovesTime(t *testing.T) {
	// Arrange
	start := time.Unix(1_700_000_000, 0)
	c := NewMockClock(start)

	// Act
	c.Advance(90 * time.Second)

	// Assert
	assert.Equal(t, start.Add(90*time.Second), c.Now())
	assert.Equal(t, int64(1_700_000_090), c.Unix())
	assert.Equal(t, 90*time.Second, c.Since(start))
}

// TestNTPClock_SuccessfulQuery_AppliesOffset 测试偏移量生效
func TestNTPClock_SuccessfulQuery_AppliesOffset(t *testing.T) {
	// Arrange
	query := func(string, time.Duration) (time.Duration, error) { return time.Hour, nil }

	// Act
	c := newNTPClock("ntp.test", time.Minute, time.Second, query)

	// Assert
	healthy, offset, lastSync, err := c.Health()
	assert.True(t, healthy)
	assert.Equal(t, time.Hour, offset)
	assert.False(t, lastSync.IsZero())
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Now(), 5*time.Second)
}

// TestNTPClock_FailedQuery_FallsBackToLocalTime 测试同步失败时使用本地时间
func TestNTPClock_FailedQuery_FallsBackToLocalTime(t *testing.T) {
	// Arrange
	var calls int32
	query := func(string, time.Duration) (time.Duration, error) {
		atomic.AddInt32(&calls, 1)
		return 0, errors.New("unreachable")
	}

	// Act
	c := newNTPClock("ntp.test", time.Hour, time.Second, query)
	now := c.Now()

	// Assert
	healthy, offset, _, err := c.Health()
	assert.False(t, healthy)
	assert.Zero(t, offset)
	assert.EqualError(t, err, "unreachable")
	assert.WithinDuration(t, time.Now(), now, 5*time.Second)
	// 退避窗口内不会立即重试
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// TestNew_UnknownType_ReturnsError 测试未知时钟类型
func TestNew_UnknownType_ReturnsError(t *testing.T) {
	_, err := New(&clockconfig.ClockOptions{Type: "atomic"}, nil)
	assert.Error(t, err)
}

// TestNew_System_ReturnsSystemClock 测试系统时钟
func TestNew_System_ReturnsSystemClock(t *testing.T) {
	c, err := New(&clockconfig.ClockOptions{Type: "system"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SystemClock{}, c)
}

// TestRegisterClockMetrics_Twice_NoError 测试重复注册指标
func TestRegisterClockMetrics_Twice_NoError(t *testing.T) {
	registry := prometheus.NewRegistry()
	fetch := func() (bool, time.Duration, time.Time, error) { return true, 0, time.Now(), nil }

	require.NoError(t, RegisterClockMetrics(registry, fetch))
	require.NoError(t, RegisterClockMetrics(registry, fetch))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}
