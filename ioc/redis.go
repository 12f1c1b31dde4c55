package ioc

import (
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/to404hanga/online_judge_contest/config"
)

func InitRedis() redis.UniversalClient {
	var cfg config.RedisConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal redis config failed: %v", err)
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func InitRedisCmdable(client redis.UniversalClient) redis.Cmdable {
	return client
}
