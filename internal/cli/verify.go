package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/blockverify/internal/app"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
	"github.com/weisyn/blockverify/pkg/types"
)

// ErrRejected 至少一个区块未通过验证
var ErrRejected = errors.New("存在未通过验证的区块")

func newVerifyCommand(flags *GlobalFlags) *cobra.Command {
	var intentName string
	cmd := &cobra.Command{
		Use:   "verify <blocks.json>",
		Short: "离线验证区块文件（直接读写本地数据目录）",
		Long: `按给定意图依次验证文件中的区块。

文件内容可以是单个区块对象或区块数组。验证通过且意图要求提交的区块会写入本地链状态，
因此运行中的 serve 进程与本命令不能同时使用同一数据目录。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent, err := request.ParseIntent(intentName)
			if err != nil {
				return err
			}
			blocks, err := LoadBlocks(args[0])
			if err != nil {
				return err
			}

			// 离线模式不输出控制台日志，避免打乱表格
			_ = os.Setenv("BLOCKVERIFY_QUIET", "true")
			opts := []app.Option{app.WithoutAPI()}
			if flags.ConfigFile != "" {
				opts = append(opts, app.WithConfigFile(flags.ConfigFile))
			}
			a, err := app.Start(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Stop() }()

			reqs := make([]*request.Request, len(blocks))
			for i, b := range blocks {
				if reqs[i], err = request.New(b, intent); err != nil {
					return fmt.Errorf("第 %d 个区块: %w", i, err)
				}
			}
			results := a.Pipeline().VerifyAll(cmd.Context(), reqs)

			out := cmd.OutOrStdout()
			table, err := RenderOutcomes(results)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)

			rejected := 0
			for _, r := range results {
				if r.Err != nil {
					rejected++
				}
			}
			fmt.Fprintln(out, RenderSummary(len(results), rejected))
			if rejected > 0 {
				return ErrRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&intentName, "intent", "i", request.NameCommit, "提交意图")
	return cmd
}

// LoadBlocks 读取区块文件，支持单个区块或区块数组
func LoadBlocks(path string) ([]*types.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取区块文件失败: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("区块文件为空: %s", path)
	}

	var blocks []*types.Block
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return nil, fmt.Errorf("解析区块数组失败: %w", err)
		}
	} else {
		var block types.Block
		if err := json.Unmarshal(trimmed, &block); err != nil {
			return nil, fmt.Errorf("解析区块失败: %w", err)
		}
		blocks = append(blocks, &block)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("区块文件中没有区块: %s", path)
	}
	for i, b := range blocks {
		if b == nil || b.Header == nil {
			return nil, fmt.Errorf("第 %d 个区块缺少区块头", i)
		}
	}
	return blocks, nil
}

// outcomeState 结果为空时显示为 cancelled
func outcomeState(out *verify.Outcome) string {
	if out == nil || !out.State.IsTerminal() {
		return "cancelled"
	}
	return string(out.State)
}
