package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/blockverify/internal/app"
	runtimeutil "github.com/weisyn/blockverify/pkg/utils/runtime"
)

func newServeCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 验证服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if applied, limit, err := runtimeutil.ApplyCgroupMemoryLimit(0.8); err != nil {
				pterm.Warning.Printfln("读取 cgroup 内存上限失败: %v", err)
			} else if applied {
				pterm.Info.Printfln("已按 cgroup 上限 %d MiB 设置内存软上限", limit>>20)
			}

			a, err := app.Start(cmd.Context(), app.WithConfigFile(flags.ConfigFile))
			if err != nil {
				return err
			}
			pterm.Success.Println("区块验证服务已启动，按 Ctrl+C 停止")
			if err := a.Wait(); err != nil {
				return err
			}
			pterm.Info.Println("服务已停止")
			return nil
		},
	}
}
