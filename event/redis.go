package event

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// RedisPublisher 以 topic 为频道执行 PUBLISH, 在独立 goroutine 中完成
type RedisPublisher struct {
	rdb     redis.Cmdable
	log     loggerv2.Logger
	timeout time.Duration
}

var _ Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(rdb redis.Cmdable, log loggerv2.Logger, timeout time.Duration) *RedisPublisher {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &RedisPublisher{
		rdb:     rdb,
		log:     log,
		timeout: timeout,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) {
	data, err := marshal(payload)
	if err != nil {
		p.log.ErrorContext(ctx, "Publish failed at marshal", logger.String("topic", topic), logger.Error(err))
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		if err := p.rdb.Publish(ctx, topic, data).Err(); err != nil {
			p.log.WarnContext(ctx, "Publish failed at redis", logger.String("topic", topic), logger.Error(err))
		}
	}()
}
