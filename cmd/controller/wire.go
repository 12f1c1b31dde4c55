//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/to404hanga/online_judge_contest/cmd/controller/ioc"
	commonioc "github.com/to404hanga/online_judge_contest/ioc"
	"github.com/to404hanga/online_judge_contest/service"
	"github.com/to404hanga/online_judge_contest/web"
)

func BuildDependency() *web.GinServer {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitRedisCmdable,
		commonioc.InitDB,
		commonioc.InitStore,
		wire.FieldsOf(new(*commonioc.Store), "Contests", "Statuses", "Records"),
		commonioc.InitPublisher,
		commonioc.InitUserDirectory,

		service.NewContestService,
		service.NewBalloonService,
		commonioc.InitStatusService,
		commonioc.InitRankingService,

		web.NewContestHandler,
		web.NewStatusHandler,
		web.NewBalloonHandler,
		web.NewRankingHandler,
		web.NewHealthHandler,
		ioc.InitNotificationHandler,

		ioc.InitGinServer,
	)
	return &web.GinServer{}
}
