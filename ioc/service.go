package ioc

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/event"
	"github.com/to404hanga/online_judge_contest/repository"
	"github.com/to404hanga/online_judge_contest/rule"
	"github.com/to404hanga/online_judge_contest/service"
)

func InitUserDirectory(db *gorm.DB, rdb redis.Cmdable, l loggerv2.Logger) repository.UserDirectory {
	var cfg config.UserCacheConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal user cache config failed: %v", err)
	}
	return repository.NewCachedUserDirectory(db, rdb, l, time.Duration(cfg.Expiration)*time.Second)
}

func InitStatusService(contests repository.ContestRepository, statuses repository.StatusRepository, records repository.RecordRepository, balloons service.BalloonService, publisher event.Publisher, l loggerv2.Logger) service.StatusService {
	var cfg config.StatusConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal status config failed: %v", err)
	}
	return service.NewStatusService(contests, statuses, records, balloons, publisher, l, cfg.RecomputeRetries)
}

func InitRankingService(contests repository.ContestRepository, statuses repository.StatusRepository, users repository.UserDirectory, l loggerv2.Logger) service.RankingService {
	var cfg rule.PrizeConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal prize config failed: %v", err)
	}
	return service.NewRankingService(contests, statuses, users, cfg, l)
}
