package clock

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	clockconfig "github.com/weisyn/blockverify/internal/config/clock"
	"github.com/weisyn/blockverify/pkg/interfaces/config"
	infraClock "github.com/weisyn/blockverify/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// New 按配置创建时钟：system | ntp
func New(opts *clockconfig.ClockOptions, logger log.Logger) (infraClock.Clock, error) {
	if opts == nil {
		return NewSystemClock(), nil
	}

	switch opts.Type {
	case "", "system":
		return NewSystemClock(), nil
	case "ntp":
		c := NewNTPClock(opts.NTPServer, opts.SyncInterval, opts.QueryTimeout)
		if healthy, offset, _, err := c.Health(); !healthy && logger != nil {
			logger.Warnf("NTP 初次同步失败，暂用本地时间: server=%s err=%v", opts.NTPServer, err)
		} else if logger != nil {
			logger.Infof("NTP 时钟已同步: server=%s offset=%s", opts.NTPServer, offset)
		}
		if err := RegisterClockMetrics(prometheus.DefaultRegisterer, c.Health); err != nil {
			return nil, fmt.Errorf("注册时钟指标失败: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("不支持的时钟类型: %s", opts.Type)
}

// ModuleInput 时钟模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider
	Logger   log.Logger `optional:"true"`
}

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(func(input ModuleInput) (infraClock.Clock, error) {
			var logger log.Logger
			if input.Logger != nil {
				logger = input.Logger.With("module", "clock")
			}
			return New(input.Provider.GetClock(), logger)
		}),
	)
}
