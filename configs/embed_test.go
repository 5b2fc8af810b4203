package configs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/config"
	"github.com/weisyn/blockverify/pkg/types"
)

// TestExampleConfig_ParsesAndValidates 示例配置可以被解析且通过校验
func TestExampleConfig_ParsesAndValidates(t *testing.T) {
	// Arrange
	var appConfig types.AppConfig

	// Act
	err := json.Unmarshal(ExampleConfig, &appConfig)

	// Assert
	require.NoError(t, err)
	require.NoError(t, config.ValidateAppConfig(&appConfig))

	provider := config.NewProvider(&appConfig)
	assert.Equal(t, "blockverify", provider.GetAppName())
	assert.Equal(t, "dev", provider.GetEnvironment())
	assert.Equal(t, ":28680", provider.GetAPI().HTTP.Addr)
	assert.Equal(t, 4, provider.GetVerify().MaxConcurrency)
}
