package ioc

import (
	"time"

	"github.com/ego-component/egorm"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"communication-platform/internal/event/delivery"
	"communication-platform/internal/pkg/routing"
	"communication-platform/internal/repository"
	"communication-platform/internal/repository/cache/local"
	"communication-platform/internal/repository/dao"
	"communication-platform/internal/service/adapter/factory"
	"communication-platform/internal/service/orchestrator"
	"communication-platform/internal/service/orchestrator/metrics"
	"communication-platform/internal/service/preference"
)

func InitPreferenceService(db *egorm.Component, localCache *ca.Cache) preference.Service {
	prefRepo := repository.NewPreferenceRepository(
		dao.NewPreferenceDAO(db),
		local.NewCache(localCache),
	)
	idRepo := repository.NewChannelIdentifierRepository(dao.NewChannelIdentifierDAO(db))
	return preference.NewPreferenceService(prefRepo, idRepo)
}

func InitDeliveryLogRepository(client *redis.Client) repository.DeliveryLogRepository {
	return repository.NewRedisDeliveryLogRepository(client, repository.DefaultDeliveryLogCap)
}

// InitOrchestrator 组装编排器并包上指标装饰器
func InitOrchestrator(
	prefSvc preference.Service,
	f *factory.Factory,
	table routing.Table,
	logRepo repository.DeliveryLogRepository,
	producer delivery.ResultEventProducer,
) orchestrator.Orchestrator {
	const attemptTimeout = 10 * time.Second
	core := orchestrator.NewOrchestrator(prefSvc, f, table, logRepo,
		orchestrator.WithResultEventProducer(producer),
		orchestrator.WithAttemptTimeout(attemptTimeout),
	)
	return metrics.NewOrchestrator(core)
}
