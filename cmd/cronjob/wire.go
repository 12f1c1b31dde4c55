//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/to404hanga/online_judge_contest/cmd/cronjob/ioc"
	commonioc "github.com/to404hanga/online_judge_contest/ioc"
	"github.com/to404hanga/online_judge_contest/job"
)

func InitScheduler() *job.CronScheduler {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitStore,
		wire.FieldsOf(new(*commonioc.Store), "Contests", "Statuses"),
		ioc.InitAttendReconciler,
		ioc.InitScheduler,
	)
	return &job.CronScheduler{}
}
