package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// RenderOutcomes 把批量验证结果渲染为表格
func RenderOutcomes(results []verify.Result) (string, error) {
	data := pterm.TableData{{"#", "高度", "区块哈希", "意图", "状态", "错误"}}
	for i, r := range results {
		row := []string{fmt.Sprintf("%d", i), "-", "-", "-", outcomeState(r.Outcome), ""}
		if r.Outcome != nil {
			row[1] = fmt.Sprintf("%d", r.Outcome.Height)
			row[2] = shortHash(r.Outcome.BlockHash.String())
			row[3] = r.Outcome.Intent
		}
		if r.Err != nil {
			row[5] = r.Err.Error()
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// RenderSummary 汇总行
func RenderSummary(total, rejected int) string {
	if rejected == 0 {
		return pterm.Success.Sprintf("%d 个区块全部通过验证", total)
	}
	return pterm.Error.Sprintf("%d 个区块中 %d 个未通过验证", total, rejected)
}

// RenderIntents 把当前构建支持的意图渲染为表格
func RenderIntents() (string, error) {
	data := pterm.TableData{{"意图", "工作量证明", "提交链状态", "完整语义检查"}}
	for _, intent := range request.AvailableIntents() {
		plan := policy.ForIntent(intent)
		data = append(data, []string{
			intent.String(),
			yesNo(plan.CheckProofOfWork),
			yesNo(plan.CommitOnSuccess),
			yesNo(plan.FullSemanticChecks),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func newIntentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "列出当前构建支持的提交意图",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := RenderIntents()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func shortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:8] + "…" + h[len(h)-8:]
}
