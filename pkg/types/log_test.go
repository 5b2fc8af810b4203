package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLogLevel 测试日志级别解析
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   LogLevel
		wantOK bool
	}{
		{"debug", DebugLevel, true},
		{" WARN ", WarnLevel, true},
		{"Fatal", FatalLevel, true},
		{"verbose", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			// Act
			got, ok := ParseLogLevel(tt.in)

			// Assert
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
