package event

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// HeaderTopic 记录通知 topic 的 kafka 消息头
const HeaderTopic = "notify-topic"

// KafkaPublisher 所有通知写入同一个 kafka topic, 通知 topic 作为消息 key 与消息头
type KafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      loggerv2.Logger
	done     chan struct{}
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(producer sarama.AsyncProducer, topic string, log loggerv2.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
		done:     make(chan struct{}),
	}
	go p.drain()
	return p
}

// drain 消费发送失败的消息, 避免阻塞生产者
func (p *KafkaPublisher) drain() {
	defer close(p.done)
	for err := range p.producer.Errors() {
		key, _ := err.Msg.Key.Encode()
		p.log.Warn("Publish failed at kafka",
			logger.String("topic", string(key)),
			logger.Error(err.Err),
		)
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload any) {
	data, err := marshal(payload)
	if err != nil {
		p.log.ErrorContext(ctx, "Publish failed at marshal", logger.String("topic", topic), logger.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(topic),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderTopic), Value: []byte(topic)},
		},
	}
	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		p.log.WarnContext(ctx, "Publish failed at enqueue", logger.String("topic", topic), logger.Error(ctx.Err()))
	}
}

// Close 关闭生产者并等待失败消息消费完毕
func (p *KafkaPublisher) Close() error {
	p.producer.AsyncClose()
	<-p.done
	return nil
}
