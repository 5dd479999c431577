package factory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/service/adapter"
)

const (
	// DefaultHealthInterval 健康检查默认周期
	DefaultHealthInterval = time.Minute

	instanceKeySep = ":"
)

// registration 注册表条目
type registration struct {
	adapterID    string
	constructor  adapter.Constructor
	channel      domain.ChannelType
	channelName  string
	registeredAt time.Time
}

// Instance 工厂持有的一个已初始化适配器实例。
// 实例归工厂所有，调用方只借用引用。
type Instance struct {
	AdapterID      string
	OrganizationID string
	Adapter        adapter.ChannelAdapter
	Config         adapter.Config
	CreatedAt      time.Time
	LastHealth     *domain.HealthResult // 首次检查前为 nil
	LastHealthAt   time.Time
}

// Factory 适配器工厂：维护注册表与按（组织，适配器）隔离的实例缓存，
// 并周期性刷新所有存活实例的健康状态。进程启动时显式构造一次，显式启停。
type Factory struct {
	mu        sync.RWMutex
	registry  map[string]registration
	instances map[string]*Instance

	interval time.Duration
	cancel   context.CancelFunc
	logger   *elog.Component
}

func NewFactory(healthInterval time.Duration) *Factory {
	if healthInterval <= 0 {
		healthInterval = DefaultHealthInterval
	}
	return &Factory{
		registry:  make(map[string]registration),
		instances: make(map[string]*Instance),
		interval:  healthInterval,
		logger:    elog.DefaultLogger,
	}
}

// RegisterAdapter 注册适配器类型。构造一个临时实例读取其渠道元信息，该实例随即丢弃。
func (f *Factory) RegisterAdapter(adapterID string, constructor adapter.Constructor) error {
	if adapterID == "" || constructor == nil {
		return fmt.Errorf("%w: adapterID = %q", errs.ErrInvalidParameter, adapterID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.registry[adapterID]; ok {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateRegistration, adapterID)
	}

	sample := constructor()
	f.registry[adapterID] = registration{
		adapterID:    adapterID,
		constructor:  constructor,
		channel:      sample.ChannelType(),
		channelName:  sample.ChannelName(),
		registeredAt: time.Now(),
	}
	return nil
}

// UnregisterAdapter 注销适配器类型，先关停所有组织下由该类型创建的存活实例。
// 单个实例的关停失败只记录日志，不中断注销。
func (f *Factory) UnregisterAdapter(ctx context.Context, adapterID string) error {
	f.mu.Lock()
	if _, ok := f.registry[adapterID]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", errs.ErrAdapterNotRegistered, adapterID)
	}
	victims := make([]*Instance, 0, len(f.instances))
	for key, inst := range f.instances {
		if inst.AdapterID == adapterID {
			victims = append(victims, inst)
			delete(f.instances, key)
		}
	}
	delete(f.registry, adapterID)
	f.mu.Unlock()

	for _, inst := range victims {
		if err := inst.Adapter.Shutdown(ctx); err != nil {
			f.logger.Warn("注销时关停适配器实例失败",
				elog.String("adapterId", inst.AdapterID),
				elog.String("organizationId", inst.OrganizationID),
				elog.FieldErr(err))
		}
	}
	return nil
}

// CreateAdapter 创建（或复用）指定组织下的适配器实例。
// 同一（组织，适配器）键重复调用幂等返回同一实例，不会重复初始化。
func (f *Factory) CreateAdapter(ctx context.Context, adapterID string, cfg adapter.Config) (adapter.ChannelAdapter, error) {
	if cfg.OrganizationID == "" {
		return nil, fmt.Errorf("%w: adapterID = %s", errs.ErrOrganizationIDMissing, adapterID)
	}
	key := instanceKey(cfg.OrganizationID, adapterID)

	f.mu.RLock()
	reg, registered := f.registry[adapterID]
	existing, ok := f.instances[key]
	f.mu.RUnlock()
	if !registered {
		return nil, fmt.Errorf("%w: %s", errs.ErrAdapterNotRegistered, adapterID)
	}
	if ok {
		return existing.Adapter, nil
	}

	instance := reg.constructor()
	if err := instance.Initialize(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrAdapterInitializeFailed, adapterID, err)
	}

	f.mu.Lock()
	// 初始化期间可能有并发调用抢先完成，保持幂等：丢弃自己的实例
	if cur, ok := f.instances[key]; ok {
		f.mu.Unlock()
		if err := instance.Shutdown(ctx); err != nil {
			f.logger.Warn("关停竞争失败的适配器实例失败",
				elog.String("key", key), elog.FieldErr(err))
		}
		return cur.Adapter, nil
	}
	f.instances[key] = &Instance{
		AdapterID:      adapterID,
		OrganizationID: cfg.OrganizationID,
		Adapter:        instance,
		Config:         cfg,
		CreatedAt:      time.Now(),
	}
	f.mu.Unlock()
	return instance, nil
}

// GetAdapter 纯查询，不存在返回 false，绝不作为副作用创建实例
func (f *Factory) GetAdapter(organizationID, adapterID string) (adapter.ChannelAdapter, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	inst, ok := f.instances[instanceKey(organizationID, adapterID)]
	if !ok {
		return nil, false
	}
	return inst.Adapter, true
}

// GetHealthyAdapters 返回最近一次健康检查为健康的实例。
// 从未检查过的实例视为未知而非健康，不会返回。
func (f *Factory) GetHealthyAdapters() []*Instance {
	f.mu.RLock()
	defer f.mu.RUnlock()
	healthy := make([]*Instance, 0, len(f.instances))
	for _, inst := range f.instances {
		if inst.LastHealth != nil && inst.LastHealth.Healthy {
			healthy = append(healthy, inst)
		}
	}
	return healthy
}

// Start 启动健康检查循环。Stop 之前重复调用无效。
func (f *Factory) Start(ctx context.Context) {
	f.mu.Lock()
	if f.cancel != nil {
		f.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	go f.healthLoop(loopCtx)
}

// Stop 停止健康检查循环
func (f *Factory) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (f *Factory) healthLoop(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.CheckAll(ctx)
		}
	}
}

// CheckAll 对所有存活实例执行一轮健康检查。
// 各实例的检查互相隔离：单个实例检查出错只记为该实例不健康，不影响同一轮的其他实例。
// 每一轮都会覆盖每个条目的 LastHealth/LastHealthAt。
func (f *Factory) CheckAll(ctx context.Context) {
	f.mu.RLock()
	keys := make([]string, 0, len(f.instances))
	insts := make([]*Instance, 0, len(f.instances))
	for key, inst := range f.instances {
		keys = append(keys, key)
		insts = append(insts, inst)
	}
	f.mu.RUnlock()

	var eg errgroup.Group
	for i := range insts {
		key, inst := keys[i], insts[i]
		eg.Go(func() error {
			result := f.checkOne(ctx, inst)
			now := time.Now()
			f.mu.Lock()
			// 实例可能在检查期间被关停，此时结果直接丢弃
			if cur, ok := f.instances[key]; ok {
				cur.LastHealth = &result
				cur.LastHealthAt = now
			}
			f.mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
}

func (f *Factory) checkOne(ctx context.Context, inst *Instance) (result domain.HealthResult) {
	start := time.Now()
	// 检查过程自身炸了也要合成一个不健康结果
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("健康检查发生panic",
				elog.String("adapterId", inst.AdapterID),
				elog.String("organizationId", inst.OrganizationID),
				elog.Any("panic", r))
			result = f.unhealthyResult(inst, start, fmt.Sprintf("panic: %v", r))
		}
	}()

	res, err := inst.Adapter.HealthCheck(ctx)
	if err != nil {
		f.logger.Warn("健康检查失败",
			elog.String("adapterId", inst.AdapterID),
			elog.String("organizationId", inst.OrganizationID),
			elog.FieldErr(err))
		return f.unhealthyResult(inst, start, err.Error())
	}
	return res
}

func (f *Factory) unhealthyResult(inst *Instance, start time.Time, msg string) domain.HealthResult {
	return domain.HealthResult{
		Healthy:   false,
		AdapterID: inst.AdapterID,
		Timestamp: time.Now(),
		Latency:   time.Since(start),
		Errors:    []string{msg},
	}
}

// ShutdownAdapter 关停并移除单个实例。实例自身 Shutdown 失败只记录日志，实例仍会被移除。
func (f *Factory) ShutdownAdapter(ctx context.Context, organizationID, adapterID string) error {
	key := instanceKey(organizationID, adapterID)
	f.mu.Lock()
	inst, ok := f.instances[key]
	if ok {
		delete(f.instances, key)
	}
	f.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrAdapterNotFound, key)
	}

	if err := inst.Adapter.Shutdown(ctx); err != nil {
		f.logger.Warn("关停适配器实例失败",
			elog.String("key", key), elog.FieldErr(err))
	}
	return nil
}

// ShutdownOrganizationAdapters 关停并移除某组织的所有实例
func (f *Factory) ShutdownOrganizationAdapters(ctx context.Context, organizationID string) {
	f.mu.Lock()
	victims := make([]*Instance, 0, len(f.instances))
	for key, inst := range f.instances {
		if inst.OrganizationID == organizationID {
			victims = append(victims, inst)
			delete(f.instances, key)
		}
	}
	f.mu.Unlock()

	for _, inst := range victims {
		if err := inst.Adapter.Shutdown(ctx); err != nil {
			f.logger.Warn("关停适配器实例失败",
				elog.String("adapterId", inst.AdapterID),
				elog.String("organizationId", inst.OrganizationID),
				elog.FieldErr(err))
		}
	}
}

// ShutdownAll 关停并移除全部实例，聚合返回个别失败。无论 Shutdown 是否成功，实例都会被移除。
func (f *Factory) ShutdownAll(ctx context.Context) error {
	f.Stop()

	f.mu.Lock()
	victims := make([]*Instance, 0, len(f.instances))
	for _, inst := range f.instances {
		victims = append(victims, inst)
	}
	f.instances = make(map[string]*Instance)
	f.mu.Unlock()

	var merr *multierror.Error
	for _, inst := range victims {
		if err := inst.Adapter.Shutdown(ctx); err != nil {
			f.logger.Warn("关停适配器实例失败",
				elog.String("adapterId", inst.AdapterID),
				elog.String("organizationId", inst.OrganizationID),
				elog.FieldErr(err))
			merr = multierror.Append(merr, fmt.Errorf("%s%s%s: %w", inst.OrganizationID, instanceKeySep, inst.AdapterID, err))
		}
	}
	return merr.ErrorOrNil()
}

func instanceKey(organizationID, adapterID string) string {
	return organizationID + instanceKeySep + adapterID
}
