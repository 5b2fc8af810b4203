// Package runtime 提供进程运行时调优工具
package runtime

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
)

// unlimitedThreshold 超过该值的 cgroup 上限视为不限制
const unlimitedThreshold = 1 << 60

// cgroupLimitFiles cgroup v2 与 v1 的内存上限文件
var cgroupLimitFiles = []string{
	"/sys/fs/cgroup/memory.max",
	"/sys/fs/cgroup/memory/memory.limit_in_bytes",
}

// ApplyCgroupMemoryLimit 按 cgroup 内存上限设置 Go 运行时软上限
//
// 容器内 badger 的块缓存与批量验证会推高堆占用，提前设置软上限让 GC 在触及 cgroup 上限前收缩。
// 用户显式设置 GOMEMLIMIT 时不做任何修改。reserveRatio 不在 (0,1) 内时使用 0.8。
func ApplyCgroupMemoryLimit(reserveRatio float64) (applied bool, limitBytes uint64, err error) {
	if os.Getenv("GOMEMLIMIT") != "" {
		return false, 0, nil
	}
	if reserveRatio <= 0 || reserveRatio >= 1 {
		reserveRatio = 0.8
	}

	limit, ok, err := readCgroupLimit(cgroupLimitFiles)
	if err != nil || !ok {
		return false, 0, err
	}

	target := int64(float64(limit) * reserveRatio)
	if target <= 0 {
		return false, limit, nil
	}
	debug.SetMemoryLimit(target)
	return true, limit, nil
}

// readCgroupLimit 依次读取候选文件，第一个存在的文件决定结果
func readCgroupLimit(files []string) (limit uint64, ok bool, err error) {
	for _, path := range files {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		s := strings.TrimSpace(string(raw))
		if s == "" || s == "max" {
			return 0, false, nil
		}
		v, parseErr := strconv.ParseUint(s, 10, 64)
		if parseErr != nil {
			return 0, false, fmt.Errorf("解析 %s 失败: %w", path, parseErr)
		}
		if v > unlimitedThreshold {
			return 0, false, nil
		}
		return v, true, nil
	}
	return 0, false, nil
}
