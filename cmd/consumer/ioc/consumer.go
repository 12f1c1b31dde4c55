package ioc

import (
	"log"

	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/event"
	commonioc "github.com/to404hanga/online_judge_contest/ioc"
	"github.com/to404hanga/online_judge_contest/service"
)

func InitJudgeResultConsumer(statusSvc service.StatusService, l loggerv2.Logger) *event.JudgeResultConsumer {
	var cfg config.KafkaConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal kafka config failed: %v", err)
	}
	group := commonioc.InitKafkaConsumerGroup(cfg)
	return event.NewJudgeResultConsumer(group, cfg.JudgeTopic, statusSvc, l)
}
