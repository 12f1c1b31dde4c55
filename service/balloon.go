package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/event"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
)

type BalloonService interface {
	// SetBalloon 设置选手某题的气球状态并发布通知, 该题尚无统计结果时返回 nil
	SetBalloon(ctx context.Context, key model.StatusKey, pid int64, delivered bool) (*model.ContestStatus, error)
	// GetPendingBalloonList 获取已通过但尚未发放气球的列表
	GetPendingBalloonList(ctx context.Context, domainID string, tid int64) ([]model.PendingBalloon, error)
}

type BalloonServiceImpl struct {
	contests  repository.ContestRepository
	statuses  repository.StatusRepository
	users     repository.UserDirectory
	publisher event.Publisher
	log       loggerv2.Logger
}

var _ BalloonService = (*BalloonServiceImpl)(nil)

func NewBalloonService(contests repository.ContestRepository, statuses repository.StatusRepository, users repository.UserDirectory, publisher event.Publisher, log loggerv2.Logger) BalloonService {
	return &BalloonServiceImpl{
		contests:  contests,
		statuses:  statuses,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

func (s *BalloonServiceImpl) getContest(ctx context.Context, domainID string, tid int64) (*model.Contest, error) {
	contest, err := s.contests.Get(ctx, domainID, tid)
	if err != nil {
		return nil, fmt.Errorf("get contest failed: %w", err)
	}
	if contest == nil {
		return nil, &errs.ContestNotFoundError{DomainID: domainID, ContestID: tid}
	}
	return contest, nil
}

func (s *BalloonServiceImpl) SetBalloon(ctx context.Context, key model.StatusKey, pid int64, delivered bool) (*model.ContestStatus, error) {
	contest, err := s.getContest(ctx, key.DomainID, key.ContestID)
	if err != nil {
		return nil, fmt.Errorf("SetBalloon failed: %w", err)
	}
	if !contest.HasProblem(pid) {
		return nil, errs.NewValidationError("pid")
	}

	status, err := s.statuses.SetBalloon(ctx, key, pid, delivered)
	if err != nil {
		return nil, fmt.Errorf("SetBalloon failed at set balloon: %w", err)
	}
	if status == nil {
		return nil, nil
	}

	user, err := s.users.GetUser(ctx, key.UserID)
	if err != nil {
		return nil, fmt.Errorf("SetBalloon failed at get user: %w", err)
	}
	letter := problemLetter(ctx, s.log, contest, pid)

	s.publisher.Publish(ctx, event.BalloonChangeTopic, &event.BalloonChangeMessage{
		UserID:        user.ID,
		DisplayName:   user.Uname,
		Nickname:      user.Nickname,
		ContestID:     key.ContestID,
		ProblemID:     pid,
		ProblemLetter: letter,
		Delivered:     delivered,
	})
	return status, nil
}

func (s *BalloonServiceImpl) GetPendingBalloonList(ctx context.Context, domainID string, tid int64) ([]model.PendingBalloon, error) {
	contest, err := s.getContest(ctx, domainID, tid)
	if err != nil {
		return nil, fmt.Errorf("GetPendingBalloonList failed: %w", err)
	}

	pending := make([]model.PendingBalloon, 0)
	for status, err := range s.statuses.ListByContest(ctx, domainID, tid) {
		if err != nil {
			return nil, fmt.Errorf("GetPendingBalloonList failed at list: %w", err)
		}
		for _, d := range status.Detail {
			if !d.Accept || d.Balloon {
				continue
			}
			letter := problemLetter(ctx, s.log, contest, d.PID)
			pending = append(pending, model.PendingBalloon{
				UserID:    status.UID,
				ProblemID: d.PID,
				Letter:    letter,
			})
		}
	}
	return pending, nil
}

// problemLetter 题号, 题目已不在比赛中或超出 26 题时退化为题目 id
func problemLetter(ctx context.Context, log loggerv2.Logger, contest *model.Contest, pid int64) string {
	letter, err := contest.LetterOf(pid)
	if err != nil {
		log.WarnContext(ctx, "problemLetter failed", logger.Int64("contest_id", contest.ID), logger.Int64("pid", pid), logger.Error(err))
		return strconv.FormatInt(pid, 10)
	}
	return letter
}
