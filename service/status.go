package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/event"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
	"github.com/to404hanga/online_judge_contest/rule"
)

type StatusService interface {
	// UpdateStatus 追加评测结果并重新计算统计结果, 状态不存在时返回 nil
	UpdateStatus(ctx context.Context, param *model.UpdateStatusParam) (*model.ContestStatus, error)
	// GetStatus 获取选手状态, 不存在时返回 nil
	GetStatus(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error)
	// ListStatus 惰性遍历比赛的所有选手状态
	ListStatus(ctx context.Context, domainID string, tid int64) iter.Seq2[*model.ContestStatus, error]
	// RemoveStatus 删除选手状态, 同时解除其提交记录与比赛的关联
	RemoveStatus(ctx context.Context, key model.StatusKey) error
	// SetRanked 设置选手是否参与排名
	SetRanked(ctx context.Context, key model.StatusKey, ranked bool) (*model.ContestStatus, error)
}

const revisionRetryInterval = 10 * time.Millisecond

var errRevisionConflict = errors.New("revision conflict")

type StatusServiceImpl struct {
	contests  repository.ContestRepository
	statuses  repository.StatusRepository
	records   repository.RecordRepository
	balloons  BalloonService
	publisher event.Publisher
	log       loggerv2.Logger
	retries   int
}

var _ StatusService = (*StatusServiceImpl)(nil)

// NewStatusService retries 为 rev 冲突时重新计算的次数, 0 表示直接覆盖写入
func NewStatusService(
	contests repository.ContestRepository,
	statuses repository.StatusRepository,
	records repository.RecordRepository,
	balloons BalloonService,
	publisher event.Publisher,
	log loggerv2.Logger,
	retries int,
) StatusService {
	return &StatusServiceImpl{
		contests:  contests,
		statuses:  statuses,
		records:   records,
		balloons:  balloons,
		publisher: publisher,
		log:       log,
		retries:   retries,
	}
}

// dedupJournal 按 rid 稳定排序, 同一 rid 只保留最后一条
func dedupJournal(journal []model.JournalEntry) []model.JournalEntry {
	sorted := make([]model.JournalEntry, len(journal))
	copy(sorted, journal)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].RID[:], sorted[j].RID[:]) < 0
	})

	result := make([]model.JournalEntry, 0, len(sorted))
	for i, j := range sorted {
		if i+1 < len(sorted) && sorted[i+1].RID == j.RID {
			continue
		}
		result = append(result, j)
	}
	return result
}

// mergeBalloon 把旧统计结果中的气球状态合并到新结果
func mergeBalloon(detail []model.StatusDetail, prev []model.StatusDetail) {
	balloons := make(map[int64]bool, len(prev))
	for _, d := range prev {
		balloons[d.PID] = d.Balloon
	}
	for i := range detail {
		detail[i].Balloon = balloons[detail[i].PID]
	}
}

func (s *StatusServiceImpl) UpdateStatus(ctx context.Context, param *model.UpdateStatusParam) (*model.ContestStatus, error) {
	key := param.Key()
	contest, err := s.contests.Get(ctx, key.DomainID, key.ContestID)
	if err != nil {
		return nil, fmt.Errorf("UpdateStatus failed at get contest: %w", err)
	}
	if contest == nil {
		return nil, &errs.ContestNotFoundError{DomainID: key.DomainID, ContestID: key.ContestID}
	}
	if !contest.HasProblem(param.ProblemID) {
		return nil, errs.NewValidationError("pid")
	}
	r, ok := rule.Get(contest.Rule)
	if !ok {
		return nil, fmt.Errorf("UpdateStatus failed: unknown rule %d of contest %d", contest.Rule, contest.ID)
	}

	status, err := s.statuses.AppendJournal(ctx, key, param.Entry())
	if err != nil {
		return nil, fmt.Errorf("UpdateStatus failed at append journal: %w", err)
	}
	if status == nil {
		return nil, nil
	}

	var updated *model.ContestStatus
	if s.retries > 0 {
		// 按 rev 条件写入, 冲突时基于最新的流水重新计算
		var failed error
		err = retry.Do(ctx, func() error {
			rev := status.Rev
			updated, failed = s.recompute(ctx, key, r, contest, status, &rev)
			if failed != nil || updated != nil {
				return nil
			}
			s.log.DebugContext(ctx, "UpdateStatus revision conflict",
				logger.Int64("contest_id", key.ContestID),
				logger.Int64("user_id", key.UserID),
				logger.Int64("rev", rev),
			)
			status, failed = s.statuses.Get(ctx, key)
			if failed != nil {
				failed = fmt.Errorf("UpdateStatus failed at reload status: %w", failed)
				return nil
			}
			if status == nil {
				return nil
			}
			return errRevisionConflict
		}, retry.WithRetryTimes(s.retries), retry.WithBaseInterval(revisionRetryInterval))
		if failed != nil {
			return nil, failed
		}
		if status == nil {
			return nil, nil
		}
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("UpdateStatus failed at retry: %w", ctx.Err())
		}
	}
	if updated == nil {
		// 未开启重试或重试次数用尽, 直接覆盖写入
		if updated, err = s.recompute(ctx, key, r, contest, status, nil); err != nil {
			return nil, err
		}
	}
	if updated == nil {
		return nil, nil
	}

	s.publisher.Publish(ctx, event.RankChangedTopic(key.ContestID), event.NewRankChangedMessage())

	if param.Accept {
		if prev, _ := status.DetailOf(param.ProblemID); !prev.Accept {
			if _, err = s.balloons.SetBalloon(ctx, key, param.ProblemID, false); err != nil {
				return nil, fmt.Errorf("UpdateStatus failed at set balloon: %w", err)
			}
		}
	}
	return updated, nil
}

// recompute 基于 status 的流水重新计算统计结果并写回.
// expectRev 不为 nil 且 rev 不一致时返回 nil
func (s *StatusServiceImpl) recompute(ctx context.Context, key model.StatusKey, r rule.Rule, contest *model.Contest, status *model.ContestStatus, expectRev *int64) (*model.ContestStatus, error) {
	if !status.IsAttended() {
		return nil, &errs.ContestNotAttendedError{DomainID: key.DomainID, ContestID: key.ContestID, UserID: key.UserID}
	}

	journal := dedupJournal(status.Journal)
	stats := r.Stat(contest, journal)
	mergeBalloon(stats.Detail, status.Detail)

	updated, err := s.statuses.SetStats(ctx, key, journal, stats, expectRev)
	if err != nil {
		return nil, fmt.Errorf("UpdateStatus failed at set stats: %w", err)
	}
	return updated, nil
}

func (s *StatusServiceImpl) GetStatus(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error) {
	status, err := s.statuses.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("GetStatus failed: %w", err)
	}
	return status, nil
}

func (s *StatusServiceImpl) ListStatus(ctx context.Context, domainID string, tid int64) iter.Seq2[*model.ContestStatus, error] {
	return s.statuses.ListByContest(ctx, domainID, tid)
}

func (s *StatusServiceImpl) RemoveStatus(ctx context.Context, key model.StatusKey) error {
	status, err := s.statuses.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("RemoveStatus failed at get status: %w", err)
	}
	if status == nil {
		return &errs.UserNotFoundError{UserID: key.UserID}
	}

	for _, j := range status.Journal {
		if err = s.records.DetachContest(ctx, j.RID); err != nil {
			return fmt.Errorf("RemoveStatus failed at detach record %s: %w", j.RID.Hex(), err)
		}
	}
	if err = s.statuses.Delete(ctx, key); err != nil {
		return fmt.Errorf("RemoveStatus failed at delete: %w", err)
	}

	s.log.InfoContext(ctx, "RemoveStatus done",
		logger.String("domain_id", key.DomainID),
		logger.Int64("contest_id", key.ContestID),
		logger.Int64("user_id", key.UserID),
		logger.Int("journal", len(status.Journal)),
	)
	s.publisher.Publish(ctx, event.RankChangedTopic(key.ContestID), event.NewRankChangedMessage())
	return nil
}

func (s *StatusServiceImpl) SetRanked(ctx context.Context, key model.StatusKey, ranked bool) (*model.ContestStatus, error) {
	status, err := s.statuses.SetRanked(ctx, key, ranked)
	if err != nil {
		return nil, fmt.Errorf("SetRanked failed: %w", err)
	}
	if status == nil {
		return nil, &errs.UserNotFoundError{UserID: key.UserID}
	}
	s.publisher.Publish(ctx, event.RankChangedTopic(key.ContestID), event.NewRankChangedMessage())
	return status, nil
}
