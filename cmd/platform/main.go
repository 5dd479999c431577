package main

import (
	"context"

	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server/egovernor"

	"communication-platform/internal/ioc"
)

func main() {
	// ego.New 负责加载配置，必须先于各组件初始化
	egoApp := ego.New()
	app := ioc.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartTasks(ctx)

	if err := egoApp.Serve(
		egovernor.Load("server.governor").Build(),
	).Cron(app.Crons...).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
