package ioc

import (
	"context"

	"github.com/gotomicro/ego/task/ecron"

	"communication-platform/internal/service/orchestrator/task"
)

type Task interface {
	Start(ctx context.Context)
}

type App struct {
	Tasks []Task
	Crons []ecron.Ecron
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		go t.Start(ctx)
	}
}

// InitApp 装配整个通信编排应用
func InitApp() *App {
	db := InitDB()
	redisClient := InitRedisClient()
	localCache := InitLocalCache()
	etcdClient := InitEtcdClient()
	dclient := InitDistributedLock(redisClient)
	resultProducer := InitResultEventProducer(InitProducer())

	f := InitFactory(InitLimiter(redisClient))
	InitAdapterInstances(f)
	table := InitRoutingTable(etcdClient)

	prefSvc := InitPreferenceService(db, localCache)
	logRepo := InitDeliveryLogRepository(redisClient)
	orch := InitOrchestrator(prefSvc, f, table, logRepo, resultProducer)
	consumer := InitSendRequestConsumer(orch, InitConsumer(), InitIdempotencyService(redisClient))

	return &App{
		Tasks: InitTasks(f, task.NewLogRetentionTask(dclient, logRepo), consumer),
		Crons: Crons(task.NewStatisticsCron(orch)),
	}
}
