package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logconfig "github.com/weisyn/blockverify/internal/config/log"
	"github.com/weisyn/blockverify/pkg/types"
)

// TestWith_ModuleField_AttachedToEntries 测试 With 附加结构化字段
func TestWith_ModuleField_AttachedToEntries(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := Wrap(zap.New(core))

	// Act
	logger.With("module", "verify", "height", 7).Infof("区块 %s 已提交", "abc")

	// Assert
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "区块 abc 已提交", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "verify", fields["module"])
	assert.EqualValues(t, 7, fields["height"])
}

// TestWith_OddArgs_DropsDanglingKey 测试奇数个参数时丢弃最后一个
func TestWith_OddArgs_DropsDanglingKey(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := Wrap(zap.New(core))

	// Act
	logger.With("module", "api", "dangling").Warn("警告")

	// Assert
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Len(t, fields, 1)
	assert.Equal(t, "api", fields["module"])
}

// TestNewModuleLogger_NilBase_ReturnsNop 测试空基础日志器
func TestNewModuleLogger_NilBase_ReturnsNop(t *testing.T) {
	logger := NewModuleLogger(nil, "verify")
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("丢弃") })
}

// TestNew_FileOutput_WritesJSON 测试文件输出为 JSON 格式
func TestNew_FileOutput_WritesJSON(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logs", "bv.log")
	cfg := logconfig.New(&types.UserLogConfig{
		Level:    types.StringPtr("debug"),
		FilePath: types.StringPtr(path),
	})
	logger, err := New(cfg)
	require.NoError(t, err)

	// Act
	logger.With("module", "chainstate").Debug("写入文件")
	require.NoError(t, logger.Sync())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "写入文件", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "chainstate", entry["module"])
}

// TestNew_LevelFilter_SuppressesLowerLevels 测试级别过滤
func TestNew_LevelFilter_SuppressesLowerLevels(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "warn.log")
	cfg := logconfig.New(&types.UserLogConfig{
		Level:    types.StringPtr("warn"),
		FilePath: types.StringPtr(path),
	})
	logger, err := New(cfg)
	require.NoError(t, err)

	// Act
	logger.Info("不应出现")
	logger.Warn("应该出现")
	require.NoError(t, logger.Sync())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "不应出现")
	assert.Contains(t, string(data), "应该出现")
}

// TestSetLogger_Nil_KeepsPrevious 测试设置空全局日志器被忽略
func TestSetLogger_Nil_KeepsPrevious(t *testing.T) {
	before := GetLogger()
	SetLogger(nil)
	assert.Same(t, before, GetLogger())
}
