package ioc

import (
	"log"

	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"

	"github.com/to404hanga/online_judge_contest/config"
)

func InitLogger() loggerv2.Logger {
	var cfg config.LoggerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal logger config failed: %v", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			log.Panicf("parse logger level failed: %v", err)
		}
		zc.Level = level
	}

	l, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Panicf("build logger failed: %v", err)
	}
	zap.ReplaceGlobals(l)

	cl := loggerv2.NewZapContextLogger(l)
	loggerv2.SetGlobalLogger(cl)
	return cl
}
