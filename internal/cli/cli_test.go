package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/blockverify/internal/core/verify/testutil"
	"github.com/weisyn/blockverify/pkg/types"
)

func init() {
	pterm.DisableStyling()
}

func writeJSON(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeJSON(t, dir, "config.json", map[string]interface{}{
		"data_dir": dir,
		"log":      map[string]interface{}{"level": "error"},
		"storage": map[string]interface{}{
			"badger": map[string]interface{}{"in_memory": true},
		},
	})
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BLOCKVERIFY_QUIET", "true")
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestVerifyCommand_ValidChain_AllCommitted 离线验证一段合法区块
func TestVerifyCommand_ValidChain_AllCommitted(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	genesis := testutil.Genesis()
	next := testutil.NextBlock(genesis)
	blocksPath := writeJSON(t, dir, "blocks.json", []*types.Block{genesis, next})

	// Act
	out, err := runCommand(t, "verify", blocksPath, "--config", writeConfig(t, dir))

	// Assert
	require.NoError(t, err, out)
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, "2 个区块全部通过验证")
}

// TestVerifyCommand_BadProofOfWork_Rejected 工作量证明不足的区块被拒绝
func TestVerifyCommand_BadProofOfWork_Rejected(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	bad := testutil.Genesis(testutil.WithBadProofOfWork())
	blocksPath := writeJSON(t, dir, "block.json", bad)

	// Act
	out, err := runCommand(t, "verify", blocksPath, "-c", writeConfig(t, dir), "--intent", "commit")

	// Assert
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "1 个区块中 1 个未通过验证")
}

// TestVerifyCommand_ReducedAlias_SkipsProofOfWork 别名 tinycash 跳过工作量证明
func TestVerifyCommand_ReducedAlias_SkipsProofOfWork(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	bad := testutil.Genesis(testutil.WithBadProofOfWork())
	blocksPath := writeJSON(t, dir, "block.json", bad)

	// Act
	out, err := runCommand(t, "verify", blocksPath, "-c", writeConfig(t, dir), "-i", "tinycash")

	// Assert
	require.NoError(t, err, out)
	assert.Contains(t, out, "reduced_validation")
}

// TestVerifyCommand_UnknownIntent_Fails 未知意图在启动前失败
func TestVerifyCommand_UnknownIntent_Fails(t *testing.T) {
	dir := t.TempDir()
	blocksPath := writeJSON(t, dir, "block.json", testutil.Genesis())

	_, err := runCommand(t, "verify", blocksPath, "-i", "mine")

	require.Error(t, err)
}

// TestIntentsCommand_ListsAvailableIntents 列出意图
func TestIntentsCommand_ListsAvailableIntents(t *testing.T) {
	out, err := runCommand(t, "intents")

	require.NoError(t, err)
	assert.Contains(t, out, "commit")
	assert.Contains(t, out, "reduced_validation")
}

// TestLoadBlocks 区块文件解析
func TestLoadBlocks(t *testing.T) {
	dir := t.TempDir()
	single := writeJSON(t, dir, "single.json", testutil.Genesis())
	array := writeJSON(t, dir, "array.json", []*types.Block{testutil.Genesis(), testutil.Genesis()})
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	emptyArray := filepath.Join(dir, "empty_array.json")
	require.NoError(t, os.WriteFile(emptyArray, []byte("[]"), 0o600))
	noHeader := filepath.Join(dir, "no_header.json")
	require.NoError(t, os.WriteFile(noHeader, []byte(`[{"transactions":[]}]`), 0o600))

	tests := []struct {
		name    string
		path    string
		want    int
		wantErr bool
	}{
		{"single object", single, 1, false},
		{"array", array, 2, false},
		{"empty file", empty, 0, true},
		{"empty array", emptyArray, 0, true},
		{"missing header", noHeader, 0, true},
		{"missing file", filepath.Join(dir, "nope.json"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := LoadBlocks(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, blocks, tt.want)
		})
	}
}

// TestConfigCommand_PrintsExample 输出示例配置
func TestConfigCommand_PrintsExample(t *testing.T) {
	out, err := runCommand(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, `"http_addr": ":28680"`)
}
