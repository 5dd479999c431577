package etcd

import (
	"context"
	"strings"
	"sync"

	"github.com/ego-component/eetcd"
	"github.com/gotomicro/ego/core/elog"
	clientv3 "go.etcd.io/etcd/client/v3"

	"communication-platform/internal/domain"
	"communication-platform/internal/pkg/routing"
)

// routingPrefix 存储渠道路由映射的前缀，键形如 /config/routing/SMS，值为适配器ID
const routingPrefix = "/config/routing"

var _ routing.Table = (*Table)(nil)

// Table 基于etcd的动态路由表：启动时全量加载，此后监听变更增量更新
type Table struct {
	client *eetcd.Component
	logger *elog.Component

	mutex   sync.RWMutex
	entries map[domain.ChannelType]string
	cancel  context.CancelFunc
}

// NewTable 创建etcd路由表
func NewTable(c *eetcd.Component) *Table {
	return &Table{
		client:  c,
		logger:  elog.DefaultLogger,
		entries: make(map[domain.ChannelType]string),
	}
}

func (t *Table) Resolve(channel domain.ChannelType) (string, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	adapterID, ok := t.entries[channel]
	return adapterID, ok
}

// Start 全量加载并开始监听变更
func (t *Table) Start(ctx context.Context) error {
	resp, err := t.client.Get(ctx, routingPrefix, clientv3.WithPrefix())
	if err != nil {
		return err
	}

	t.mutex.Lock()
	for _, kv := range resp.Kvs {
		channel, ok := t.parseKey(string(kv.Key))
		if !ok {
			continue
		}
		t.entries[channel] = string(kv.Value)
	}
	t.mutex.Unlock()

	watchCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	watchCh := t.client.Watch(watchCtx, routingPrefix, clientv3.WithPrefix())

	go t.watch(watchCtx, watchCh)
	return nil
}

func (t *Table) watch(ctx context.Context, watchCh clientv3.WatchChan) {
	for {
		select {
		case resp := <-watchCh:
			if resp.Canceled {
				return
			}
			if err := resp.Err(); err != nil {
				t.logger.Warn("监听路由表变更出错", elog.FieldErr(err))
				continue
			}
			for _, event := range resp.Events {
				channel, ok := t.parseKey(string(event.Kv.Key))
				if !ok {
					continue
				}
				t.apply(event, channel)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (t *Table) apply(event *clientv3.Event, channel domain.ChannelType) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	switch event.Type {
	case clientv3.EventTypePut:
		t.entries[channel] = string(event.Kv.Value)
		t.logger.Info("路由表更新",
			elog.String("channel", channel.String()),
			elog.String("adapterID", string(event.Kv.Value)))
	case clientv3.EventTypeDelete:
		delete(t.entries, channel)
		t.logger.Info("路由表删除", elog.String("channel", channel.String()))
	}
}

func (t *Table) parseKey(key string) (domain.ChannelType, bool) {
	name := strings.Trim(strings.TrimPrefix(key, routingPrefix), "/")
	channel := domain.ChannelType(name)
	if !channel.IsValid() {
		t.logger.Warn("路由表中出现未知渠道类型", elog.String("key", key))
		return "", false
	}
	return channel, true
}

func (t *Table) Close() error {
	if t.cancel != nil {
		t.cancel()
	}
	return nil
}
