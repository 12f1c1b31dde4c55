package ioc

import (
	"context"
	"log"
	"slices"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/web"
)

// InitNotificationHandler 通知总线包含 redis 时启动订阅
func InitNotificationHandler(rdb redis.UniversalClient, l loggerv2.Logger) *web.NotificationHandler {
	var cfg config.BusConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal bus config failed: %v", err)
	}

	h := web.NewNotificationHandler(rdb, l)
	if slices.Contains(cfg.Drivers, "redis") {
		go func() {
			if err := h.Run(context.Background()); err != nil {
				l.Error("notification relay stopped", logger.Error(err))
			}
		}()
	} else {
		l.Warn("redis bus disabled, websocket notification relay receives nothing")
	}
	return h
}
