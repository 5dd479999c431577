package ioc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTask struct {
	wg      *sync.WaitGroup
	started chan string
	name    string
}

func (f *fakeTask) Start(ctx context.Context) {
	f.started <- f.name
	<-ctx.Done()
	f.wg.Done()
}

func TestApp_StartTasks(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	started := make(chan string, 3)
	names := []string{"factory", "retention", "consumer"}
	app := &App{}
	for _, name := range names {
		wg.Add(1)
		app.Tasks = append(app.Tasks, &fakeTask{wg: &wg, started: started, name: name})
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.StartTasks(ctx)

	// 每个任务都在自己的goroutine里启动，StartTasks本身不阻塞
	got := make(map[string]bool, len(names))
	for range names {
		select {
		case name := <-started:
			got[name] = true
		case <-time.After(time.Second):
			require.Fail(t, "有任务没有启动")
		}
	}
	for _, name := range names {
		assert.True(t, got[name], "任务 %s 应当被启动", name)
	}

	cancel()
	wg.Wait()
}
