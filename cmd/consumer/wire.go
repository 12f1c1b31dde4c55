//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/to404hanga/online_judge_contest/cmd/consumer/ioc"
	"github.com/to404hanga/online_judge_contest/event"
	commonioc "github.com/to404hanga/online_judge_contest/ioc"
	"github.com/to404hanga/online_judge_contest/service"
)

func InitConsumer() *event.JudgeResultConsumer {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitRedisCmdable,
		commonioc.InitDB,
		commonioc.InitStore,
		wire.FieldsOf(new(*commonioc.Store), "Contests", "Statuses", "Records"),
		commonioc.InitPublisher,
		commonioc.InitUserDirectory,

		service.NewBalloonService,
		commonioc.InitStatusService,

		ioc.InitJudgeResultConsumer,
	)
	return &event.JudgeResultConsumer{}
}
