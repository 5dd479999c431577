package ioc

import (
	"context"
	"time"

	"github.com/ego-component/eetcd"
	"github.com/gotomicro/ego/core/econf"

	"communication-platform/internal/domain"
	"communication-platform/internal/pkg/ratelimit"
	"communication-platform/internal/pkg/routing"
	routingetcd "communication-platform/internal/pkg/routing/etcd"
	"communication-platform/internal/service/adapter"
	"communication-platform/internal/service/adapter/console"
	"communication-platform/internal/service/adapter/factory"
	limitadapter "communication-platform/internal/service/adapter/ratelimit"
	"communication-platform/internal/service/adapter/sms"
	"communication-platform/internal/service/adapter/tracing"
	"communication-platform/internal/service/adapter/webhook"
)

const (
	adapterIDConsole = "console"
	adapterIDSMS     = "sms"
	adapterIDWebhook = "webhook"
)

// InitFactory 创建适配器工厂并注册内置适配器。
// 所有适配器都包上限流和 otel 追踪装饰器。
func InitFactory(limiter ratelimit.Limiter) *factory.Factory {
	f := factory.NewFactory(factory.DefaultHealthInterval)
	register := func(adapterID string, constructor adapter.Constructor) {
		if err := f.RegisterAdapter(adapterID, func() adapter.ChannelAdapter {
			return tracing.NewAdapter(limitadapter.NewAdapter(constructor(), limiter), adapterID)
		}); err != nil {
			panic(err)
		}
	}
	register(adapterIDConsole, func() adapter.ChannelAdapter { return console.NewAdapter() })
	register(adapterIDSMS, func() adapter.ChannelAdapter { return sms.NewAdapter() })
	register(adapterIDWebhook, func() adapter.ChannelAdapter { return webhook.NewAdapter() })
	return f
}

// InitAdapterInstances 按配置为每个组织创建适配器实例
func InitAdapterInstances(f *factory.Factory) {
	type InstanceConfig struct {
		AdapterID      string            `yaml:"adapterId"`
		OrganizationID string            `yaml:"organizationId"`
		Settings       map[string]string `yaml:"settings"`
	}
	var instances []InstanceConfig
	if err := econf.UnmarshalKey("adapters.instances", &instances); err != nil {
		panic(err)
	}
	const createTimeout = 10 * time.Second
	for _, ins := range instances {
		ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
		_, err := f.CreateAdapter(ctx, ins.AdapterID, adapter.Config{
			OrganizationID: ins.OrganizationID,
			Settings:       ins.Settings,
		})
		cancel()
		if err != nil {
			panic(err)
		}
	}
}

// InitRoutingTable 优先使用etcd动态路由表，未配置etcd时回退到本地静态配置
func InitRoutingTable(etcdClient *eetcd.Component) routing.Table {
	if etcdClient != nil {
		table := routingetcd.NewTable(etcdClient)
		const loadTimeout = 5 * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := table.Start(ctx); err != nil {
			panic(err)
		}
		return table
	}

	var entries map[string]string
	if err := econf.UnmarshalKey("routing", &entries); err != nil {
		panic(err)
	}
	static := make(map[domain.ChannelType]string, len(entries))
	for ch, adapterID := range entries {
		static[domain.ChannelType(ch)] = adapterID
	}
	return routing.NewStaticTable(static)
}
