package ioc

import (
	"log"
	"time"

	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/job"
	"github.com/to404hanga/online_judge_contest/job/reconciler"
	"github.com/to404hanga/online_judge_contest/repository"
)

func InitAttendReconciler(contests repository.ContestRepository, statuses repository.StatusRepository, l loggerv2.Logger) *job.JobConfig {
	var cfg config.ReconcilerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal reconciler config failed: %v", err)
	}

	r := reconciler.NewAttendReconciler(contests, statuses, l, time.Duration(cfg.ActiveWindow)*time.Hour)
	return &job.JobConfig{
		Name:        "参赛人数校正",
		CronExpr:    cfg.CronExpr,
		JobFunc:     r.RunReconcile,
		Description: "按选手状态重新统计近期比赛的参赛人数",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}
