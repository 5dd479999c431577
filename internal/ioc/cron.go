package ioc

import (
	"github.com/gotomicro/ego/task/ecron"

	"communication-platform/internal/service/orchestrator/task"
)

func Crons(s *task.StatisticsCron) []ecron.Ecron {
	c1 := ecron.Load("cron.deliveryStatistics").Build(ecron.WithJob(s.Do))
	return []ecron.Ecron{c1}
}
