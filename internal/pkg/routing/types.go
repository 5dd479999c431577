package routing

import (
	"sync"

	"communication-platform/internal/domain"
)

// Table 渠道类型到适配器ID的映射。
// 这是部署期配置而非业务规则，每套环境可以把同一渠道指向不同适配器。
type Table interface {
	// Resolve 查对应适配器ID，没有配置返回 false
	Resolve(channel domain.ChannelType) (string, bool)
}

var _ Table = (*StaticTable)(nil)

// StaticTable 进程内静态路由表
type StaticTable struct {
	mu      sync.RWMutex
	entries map[domain.ChannelType]string
}

func NewStaticTable(entries map[domain.ChannelType]string) *StaticTable {
	copied := make(map[domain.ChannelType]string, len(entries))
	for ch, adapterID := range entries {
		copied[ch] = adapterID
	}
	return &StaticTable{entries: copied}
}

func (t *StaticTable) Resolve(channel domain.ChannelType) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	adapterID, ok := t.entries[channel]
	return adapterID, ok
}

// Update 覆盖单条映射，adapterID 为空表示删除
func (t *StaticTable) Update(channel domain.ChannelType, adapterID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if adapterID == "" {
		delete(t.entries, channel)
		return
	}
	t.entries[channel] = adapterID
}
