package ioc

import (
	"communication-platform/internal/event/request"
	"communication-platform/internal/service/adapter/factory"
	"communication-platform/internal/service/orchestrator/task"
)

func InitTasks(f *factory.Factory,
	t1 *task.LogRetentionTask,
	t2 *request.EventConsumer,
) []Task {
	return []Task{
		// 工厂的健康检查循环也按后台任务的方式启动
		f,
		t1,
		t2,
	}
}
