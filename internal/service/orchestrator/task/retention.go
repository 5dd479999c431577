package task

import (
	"context"
	"time"

	"github.com/meoying/dlock-go"

	"communication-platform/internal/pkg/loopjob"
	"communication-platform/internal/repository"
)

// LogRetentionTask 周期性对投递日志重新施加容量上限。
// 正常写入路径本身就截断超量记录，这个任务兜底处理容量配置调小后的存量数据。
// 依靠分布式锁保证集群内只有一个实例在执行。
type LogRetentionTask struct {
	dclient   dlock.Client
	repo      repository.DeliveryLogRepository
	sleepTime time.Duration
}

func NewLogRetentionTask(dclient dlock.Client, repo repository.DeliveryLogRepository) *LogRetentionTask {
	// 在分钟以内都可以
	const defaultSleepTime = 10 * time.Second
	return &LogRetentionTask{dclient: dclient, repo: repo, sleepTime: defaultSleepTime}
}

func (t *LogRetentionTask) Start(ctx context.Context) {
	const key = "communication_delivery_log_retention"
	lj := loopjob.NewInfiniteLoop(t.dclient, t.HandleRetention, key)
	lj.Run(ctx)
}

func (t *LogRetentionTask) HandleRetention(ctx context.Context) error {
	if err := t.repo.Trim(ctx); err != nil {
		return err
	}
	// 日志清理不需要太频繁，但这里不能睡过分布式锁的过期时间（一分钟），
	// 否则每一轮续约都会失败，锁反复易主
	time.Sleep(t.sleepTime)
	return nil
}
