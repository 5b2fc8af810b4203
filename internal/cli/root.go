// Package cli 提供 blockverify 命令行
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/blockverify/configs"
	"github.com/weisyn/blockverify/internal/app/version"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件路径
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	flags := &GlobalFlags{}
	root := &cobra.Command{
		Use:   "blockverify",
		Short: "区块验证服务",
		Long: `blockverify - 按提交意图对区块执行验证并维护链状态

提交意图:
  commit               完整验证（含工作量证明）并写入链状态
  reduced_validation   精简验证（别名 tinycash），跳过工作量证明与完整语义检查
  check_proposal       提案检查，只验证不写入（需要 getblocktemplate 构建标签）`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "配置文件路径 (JSON)")

	root.AddCommand(
		newServeCommand(flags),
		newVerifyCommand(flags),
		newIntentsCommand(),
		newVersionCommand(),
		newConfigCommand(),
	)
	return root
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
		},
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "输出示例配置",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = cmd.OutOrStdout().Write(configs.ExampleConfig)
		},
	}
}
