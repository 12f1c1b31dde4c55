package ioc

import (
	"context"
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/to404hanga/online_judge_contest/config"
)

func InitMongo(l loggerv2.Logger) *mongo.Database {
	var cfg config.MongoConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal mongo config failed: %v", err)
	}
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		log.Panicf("connect mongo failed: %v", err)
	}
	l.Info("mongo client created", logger.String("database", cfg.Database))
	return client.Database(cfg.Database)
}
