package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/repository"
)

// AttendReconciler 按选手状态重新统计比赛的参赛人数.
// 参赛计数与状态文档分两次写入, 写入失败时计数会偏小
type AttendReconciler struct {
	contests     repository.ContestRepository
	statuses     repository.StatusRepository
	log          loggerv2.Logger
	activeWindow time.Duration
	now          func() time.Time
}

// NewAttendReconciler activeWindow 内结束的比赛和未结束的比赛会被校正
func NewAttendReconciler(contests repository.ContestRepository, statuses repository.StatusRepository, log loggerv2.Logger, activeWindow time.Duration) *AttendReconciler {
	return &AttendReconciler{
		contests:     contests,
		statuses:     statuses,
		log:          log,
		activeWindow: activeWindow,
		now:          time.Now,
	}
}

// RunReconcile 运行参赛人数校正任务
func (r *AttendReconciler) RunReconcile(ctx context.Context) error {
	r.log.InfoContext(ctx, "Starting attend reconcile job")

	contests, err := r.contests.ListEndedAfter(ctx, r.now().Add(-r.activeWindow))
	if err != nil {
		return fmt.Errorf("RunReconcile failed at list contests: %w", err)
	}

	var (
		fixed int
		errs  []error
	)
	for _, c := range contests {
		if err = ctx.Err(); err != nil {
			return err
		}
		n, err := r.statuses.CountAttended(ctx, c.DomainID, c.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("count contest %d: %w", c.ID, err))
			continue
		}
		if n == c.Attend {
			continue
		}
		if err = r.contests.SetAttend(ctx, c.DomainID, c.ID, n); err != nil {
			errs = append(errs, fmt.Errorf("set attend of contest %d: %w", c.ID, err))
			continue
		}
		fixed++
		r.log.InfoContext(ctx, "RunReconcile fixed attend",
			logger.String("domain_id", c.DomainID),
			logger.Int64("contest_id", c.ID),
			logger.Int64("from", c.Attend),
			logger.Int64("to", n),
		)
	}

	r.log.InfoContext(ctx, "Attend reconcile completed", logger.Int("contests", len(contests)), logger.Int("fixed", fixed))
	return errors.Join(errs...)
}
