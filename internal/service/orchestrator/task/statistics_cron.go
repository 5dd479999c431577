package task

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/service/orchestrator"
)

// StatisticsCron 周期性汇总投递统计并输出到日志，供运维观察整体投递健康度。
type StatisticsCron struct {
	orch   orchestrator.Orchestrator
	logger *elog.Component
}

func NewStatisticsCron(orch orchestrator.Orchestrator) *StatisticsCron {
	return &StatisticsCron{
		orch:   orch,
		logger: elog.DefaultLogger,
	}
}

func (c *StatisticsCron) Do(ctx context.Context) error {
	const statsTimeout = time.Second * 10
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()
	stats, err := c.orch.GetStatistics(ctx)
	if err != nil {
		c.logger.Error("汇总投递统计失败", elog.FieldErr(err))
		return err
	}
	c.logger.Info("投递统计",
		elog.Any("total", stats.Total),
		elog.Any("succeeded", stats.Succeeded),
		elog.Any("failed", stats.Failed),
		elog.Any("fallbackAttempts", stats.TotalFallbackAttempts),
		elog.Any("avgFallbackAttempts", stats.AvgFallbackAttempts),
		elog.Any("channelUsage", stats.ChannelUsage))
	return nil
}
