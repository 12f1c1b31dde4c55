package ioc

import (
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/config"
	"github.com/to404hanga/online_judge_contest/event"
)

// InitPublisher 按 bus.drivers 创建通知总线, 多个驱动时扇出
func InitPublisher(rdb redis.Cmdable, l loggerv2.Logger) event.Publisher {
	var cfg config.BusConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal bus config failed: %v", err)
	}

	var publishers event.FanoutPublisher
	for _, driver := range cfg.Drivers {
		switch driver {
		case "redis":
			publishers = append(publishers, event.NewRedisPublisher(rdb, l, time.Duration(cfg.Timeout)*time.Millisecond))
		case "kafka":
			var kcfg config.KafkaConfig
			if err := viper.UnmarshalKey(kcfg.Key(), &kcfg); err != nil {
				log.Panicf("unmarshal kafka config failed: %v", err)
			}
			publishers = append(publishers, event.NewKafkaPublisher(InitKafkaProducer(kcfg), kcfg.NotifyTopic, l))
		case "noop":
		default:
			log.Panicf("unknown bus driver: %s", driver)
		}
	}

	switch len(publishers) {
	case 0:
		l.Warn("no notification bus configured")
		return event.NoopPublisher{}
	case 1:
		return publishers[0]
	}
	return publishers
}

func kafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	// 消息头需要 0.11 及以上版本
	cfg.Version = sarama.V2_1_0_0
	return cfg
}

func InitKafkaProducer(cfg config.KafkaConfig) sarama.AsyncProducer {
	sc := kafkaConfig()
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	producer, err := sarama.NewAsyncProducer(cfg.Addrs, sc)
	if err != nil {
		log.Panicf("create kafka producer failed: %v", err)
	}
	return producer
}

func InitKafkaConsumerGroup(cfg config.KafkaConfig) sarama.ConsumerGroup {
	sc := kafkaConfig()
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	group, err := sarama.NewConsumerGroup(cfg.Addrs, cfg.ConsumerGroup, sc)
	if err != nil {
		log.Panicf("create kafka consumer group failed: %v", err)
	}
	return group
}
