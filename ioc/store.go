package ioc

import (
	"context"
	"log"
	"time"

	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/repository"
)

// Store 比赛与选手状态的存储
type Store struct {
	Contests repository.ContestRepository
	Statuses repository.StatusRepository
	Records  repository.RecordRepository
}

// InitStore 按 store.driver 创建存储, mongo 存储启动时创建索引
func InitStore(l loggerv2.Logger) *Store {
	var cfg config.StoreConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal store config failed: %v", err)
	}

	switch cfg.Driver {
	case "memory":
		l.Warn("using memory store, data is lost on restart")
		return &Store{
			Contests: repository.NewMemoryContestRepository(),
			Statuses: repository.NewMemoryStatusRepository(),
			Records:  repository.NewMemoryRecordRepository(),
		}
	case "", "mongo":
	default:
		log.Panicf("unknown store driver: %s", cfg.Driver)
	}

	db := InitMongo(l)
	contests := repository.NewMongoContestRepository(db)
	statuses := repository.NewMongoStatusRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := contests.EnsureIndexes(ctx); err != nil {
		log.Panicf("ensure contest indexes failed: %v", err)
	}
	if err := statuses.EnsureIndexes(ctx); err != nil {
		log.Panicf("ensure status indexes failed: %v", err)
	}

	return &Store{
		Contests: contests,
		Statuses: statuses,
		Records:  repository.NewMongoRecordRepository(db),
	}
}
