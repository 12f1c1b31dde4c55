package ioc

import (
	"log"
	"os"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/pkg/gintool"
	"github.com/to404hanga/online_judge_contest/web"
)

func InitGinServer(
	l loggerv2.Logger,
	contestHandler *web.ContestHandler,
	statusHandler *web.StatusHandler,
	balloonHandler *web.BalloonHandler,
	rankingHandler *web.RankingHandler,
	notificationHandler *web.NotificationHandler,
	healthHandler *web.HealthHandler,
) *web.GinServer {
	var cfg config.GinConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal gin config failed, err: %v", err)
	}

	// 优先使用环境变量中设置的服务端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		gintool.RequestIDMiddleware(),
		gintool.AccessLogMiddleware(l),
	)
	if cfg.EnablePprof {
		pprof.Register(engine)
	}
	engine.GET(constants.MetricsPath, gin.WrapH(promhttp.Handler()))

	for _, h := range []web.Handler{
		contestHandler,
		statusHandler,
		balloonHandler,
		rankingHandler,
		notificationHandler,
		healthHandler,
	} {
		h.Register(engine)
	}

	return web.NewGinServer(engine, cfg.Addr)
}
