package ioc

import (
	"log"

	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/job"
)

func InitScheduler(l loggerv2.Logger, attendReconciler *job.JobConfig) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	if err := scheduler.AddJob(attendReconciler); err != nil {
		log.Panicf("add job %s failed: %v", attendReconciler.Name, err)
	}

	return scheduler
}
