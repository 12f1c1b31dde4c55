package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	json "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/to404hanga/pkg404/saramax"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
)

// JudgeResultMessage 评测服务产出的评测结果
type JudgeResultMessage struct {
	DomainID  string `json:"domain_id" validate:"required"`
	ContestID int64  `json:"contest_id" validate:"required,min=1"`
	UserID    int64  `json:"user_id" validate:"required,min=1"`
	RID       string `json:"rid" validate:"required,len=24,hexadecimal"`
	ProblemID int64  `json:"problem_id" validate:"required,min=1"`
	Accept    bool   `json:"accept"`
	Score     int    `json:"score" validate:"min=0"`
}

func (m *JudgeResultMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Param 转换为状态更新参数
func (m *JudgeResultMessage) Param() (*model.UpdateStatusParam, error) {
	rid, err := primitive.ObjectIDFromHex(m.RID)
	if err != nil {
		return nil, fmt.Errorf("invalid rid %q: %w", m.RID, err)
	}
	p := &model.UpdateStatusParam{
		UserID:    m.UserID,
		RID:       rid,
		ProblemID: m.ProblemID,
		Accept:    m.Accept,
		Score:     m.Score,
	}
	p.DomainID = m.DomainID
	p.ContestID = m.ContestID
	return p, nil
}

// StatusUpdater 评测结果的处理方
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, param *model.UpdateStatusParam) (*model.ContestStatus, error)
}

// JudgeResultConsumer 消费评测结果并更新选手状态.
// 处理失败的消息只记录日志并提交位移, 不做重试
type JudgeResultConsumer struct {
	group    sarama.ConsumerGroup
	topics   []string
	updater  StatusUpdater
	validate *validator.Validate
	handler  sarama.ConsumerGroupHandler
	log      loggerv2.Logger
}

func NewJudgeResultConsumer(group sarama.ConsumerGroup, topic string, updater StatusUpdater, log loggerv2.Logger) *JudgeResultConsumer {
	c := &JudgeResultConsumer{
		group:    group,
		topics:   []string{topic},
		updater:  updater,
		validate: validator.New(),
		log:      log,
	}
	c.handler = saramax.NewHandler[JudgeResultMessage](log, c.Consume)
	return c
}

// Start 阻塞消费直到 ctx 结束
func (c *JudgeResultConsumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.ErrorContext(ctx, "JudgeResultConsumer group error", logger.Error(err))
		}
	}()
	for {
		if err := c.group.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("JudgeResultConsumer failed at consume: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *JudgeResultConsumer) Close() error {
	return c.group.Close()
}

// Consume 处理一条评测结果, 返回的错误由 saramax 记录
func (c *JudgeResultConsumer) Consume(msg *sarama.ConsumerMessage, m JudgeResultMessage) error {
	ctx := loggerv2.NewContextWithFields(
		logger.String("topic", msg.Topic),
		logger.Int32("partition", msg.Partition),
		logger.Int64("offset", msg.Offset),
	)
	if err := c.validate.StructCtx(ctx, &m); err != nil {
		return fmt.Errorf("Consume failed at validate: %w", err)
	}
	param, err := m.Param()
	if err != nil {
		return fmt.Errorf("Consume failed at param: %w", err)
	}

	ctx = loggerv2.ContextWithFields(ctx,
		logger.String("domain_id", m.DomainID),
		logger.Int64("contest_id", m.ContestID),
		logger.Int64("user_id", m.UserID),
		logger.String("rid", m.RID),
	)
	status, err := c.updater.UpdateStatus(ctx, param)
	var notAttended *errs.ContestNotAttendedError
	switch {
	case errors.As(err, &notAttended):
		c.log.WarnContext(ctx, "Consume skipped, user has not attended")
	case err != nil:
		return fmt.Errorf("Consume failed at update status: %w", err)
	case status == nil:
		c.log.WarnContext(ctx, "Consume skipped, status not found")
	default:
		c.log.DebugContext(ctx, "Consume done")
	}
	return nil
}
