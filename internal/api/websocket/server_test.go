package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/api/websocket/types"
	eventbus "github.com/weisyn/blockverify/internal/core/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// TestClientEnqueue_FullQueue_DropsOldest 队列满时丢弃最旧消息并计数
func TestClientEnqueue_FullQueue_DropsOldest(t *testing.T) {
	// Arrange
	c := newClient(nil, types.Filter{}, 2)

	// Act
	for i := 0; i < 5; i++ {
		c.enqueue(&types.OutcomeMessage{Outcome: &verify.Outcome{Height: uint64(i)}})
	}

	// Assert
	require.Len(t, c.send, 2)
	assert.Equal(t, uint64(3), (<-c.send).Outcome.Height)
	assert.Equal(t, uint64(4), (<-c.send).Outcome.Height)
	assert.Equal(t, uint64(3), c.dropped.Load())
}

// TestFilter_Match 过滤条件
func TestFilter_Match(t *testing.T) {
	out := &verify.Outcome{Intent: "commit", State: verify.StateRejected}
	tests := []struct {
		name   string
		filter types.Filter
		want   bool
	}{
		{"empty", types.Filter{}, true},
		{"intent match", types.Filter{Intent: "commit"}, true},
		{"intent mismatch", types.Filter{Intent: "reduced_validation"}, false},
		{"state match", types.Filter{State: "rejected"}, true},
		{"both mismatch state", types.Filter{Intent: "commit", State: "committed"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(out))
		})
	}
	assert.False(t, types.Filter{}.Match(nil))
}

// TestServer_Broadcast_RoutesByFilter 事件总线终态事件按过滤条件分发
func TestServer_Broadcast_RoutesByFilter(t *testing.T) {
	// Arrange
	bus := eventbus.New(nil)
	s := NewServer(nil, bus, Options{BufferSize: 4})
	require.NoError(t, s.Start())
	all := newClient(nil, types.Filter{}, 4)
	rejectedOnly := newClient(nil, types.Filter{State: string(verify.StateRejected)}, 4)
	s.register(all)
	s.register(rejectedOnly)

	// Act
	bus.Publish(event.EventTypeSubmissionCommitted, &verify.Outcome{State: verify.StateCommitted})
	bus.Publish(event.EventTypeSubmissionRejected, &verify.Outcome{State: verify.StateRejected})

	// Assert
	assert.Len(t, all.send, 2)
	require.Len(t, rejectedOnly.send, 1)
	msg := <-rejectedOnly.send
	assert.Equal(t, string(event.EventTypeSubmissionRejected), msg.Type)

	stats := s.CollectMemoryStats()
	assert.Equal(t, int64(2), stats.Objects)
	assert.Equal(t, int64(2), stats.CacheItems)

	// Stop 之后不再接收事件，已有连接全部关闭
	s.Stop()
	bus.Publish(event.EventTypeSubmissionCommitted, &verify.Outcome{State: verify.StateCommitted})
	assert.Len(t, all.send, 2)
	assert.Equal(t, 0, s.ConnectionCount())
	select {
	case <-all.done:
	default:
		t.Fatal("连接未关闭")
	}
}
