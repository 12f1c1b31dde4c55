package event

import (
	"context"
	"sync"
)

// Publisher 通知总线. 发布失败只记录日志, 不返回给调用方
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}

type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, topic string, payload any) {}

// FanoutPublisher 依次发布到多个总线
type FanoutPublisher []Publisher

var _ Publisher = FanoutPublisher(nil)

func (f FanoutPublisher) Publish(ctx context.Context, topic string, payload any) {
	for _, p := range f {
		p.Publish(ctx, topic, payload)
	}
}

// Published 一条已发布的通知
type Published struct {
	Topic   string
	Payload any
}

// RecordingPublisher 记录所有发布的通知, 用于测试与调试
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Published
}

var _ Publisher = (*RecordingPublisher)(nil)

func (r *RecordingPublisher) Publish(ctx context.Context, topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Published{Topic: topic, Payload: payload})
}

// Events 返回已发布通知的副本
func (r *RecordingPublisher) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Published, len(r.events))
	copy(out, r.events)
	return out
}

// ByTopic 返回指定 topic 的通知
func (r *RecordingPublisher) ByTopic(topic string) []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Published
	for _, e := range r.events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

func (r *RecordingPublisher) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
