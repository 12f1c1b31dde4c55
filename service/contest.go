package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
	"github.com/to404hanga/online_judge_contest/rule"
)

type ContestService interface {
	// CreateContest 创建比赛, 返回比赛 id
	CreateContest(ctx context.Context, param *model.CreateContestParam) (int64, error)
	// EditContest 部分更新比赛
	EditContest(ctx context.Context, param *model.EditContestParam) (*model.Contest, error)
	// GetContest 获取比赛
	GetContest(ctx context.Context, domainID string, tid int64) (*model.Contest, error)
	// GetContestList 分页获取比赛列表, id 倒序
	GetContestList(ctx context.Context, param *model.GetContestListParam) ([]*model.Contest, error)
	// AttendContest 参加比赛, 每个用户只能参加一次
	AttendContest(ctx context.Context, domainID string, tid, uid int64) (*model.ContestStatus, error)
	// GetStatusMap 获取用户在多场比赛中的状态, 以比赛 id 为键
	GetStatusMap(ctx context.Context, domainID string, uid int64, tids []int64) (map[int64]*model.ContestStatus, error)
	// ConvertProblem 题目 id 与题号互转
	ConvertProblem(ctx context.Context, param *model.ConvertProblemParam) (*model.ConvertProblemResponse, error)
}

type ContestServiceImpl struct {
	contests repository.ContestRepository
	statuses repository.StatusRepository
	log      loggerv2.Logger
}

var _ ContestService = (*ContestServiceImpl)(nil)

func NewContestService(contests repository.ContestRepository, statuses repository.StatusRepository, log loggerv2.Logger) ContestService {
	return &ContestServiceImpl{
		contests: contests,
		statuses: statuses,
		log:      log,
	}
}

// checkContest 校验比赛字段, 返回不合法的字段名
func checkContest(c *model.Contest) error {
	var fields []string
	if strings.TrimSpace(c.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(c.Content) == "" {
		fields = append(fields, "content")
	}
	if _, ok := rule.Get(c.Rule); !ok {
		fields = append(fields, "rule")
	}
	if !c.BeginAt.Before(c.EndAt) {
		fields = append(fields, "begin_at", "end_at")
	}
	// 题号为单个大写字母, 最多 26 题
	badPIDs := len(c.PIDs) > 26
	seen := make(map[int64]struct{}, len(c.PIDs))
	for _, pid := range c.PIDs {
		if _, dup := seen[pid]; dup || pid <= 0 {
			badPIDs = true
			break
		}
		seen[pid] = struct{}{}
	}
	if badPIDs {
		fields = append(fields, "pids")
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields...)
	}
	return nil
}

func (s *ContestServiceImpl) CreateContest(ctx context.Context, param *model.CreateContestParam) (int64, error) {
	contest := &model.Contest{
		DomainID: param.DomainID,
		Title:    param.Title,
		Content:  param.Content,
		OwnerUID: param.Operator,
		Rule:     param.Rule,
		Private:  param.Private,
		BeginAt:  param.BeginAt,
		EndAt:    param.EndAt,
		PIDs:     param.PIDs,
	}
	if contest.PIDs == nil {
		contest.PIDs = []int64{}
	}
	if err := checkContest(contest); err != nil {
		return 0, err
	}

	id, err := s.contests.NextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("CreateContest failed at next id: %w", err)
	}
	contest.ID = id
	if err = s.contests.Insert(ctx, contest); err != nil {
		return 0, fmt.Errorf("CreateContest failed at insert: %w", err)
	}

	s.log.InfoContext(ctx, "CreateContest done",
		logger.String("domain_id", contest.DomainID),
		logger.Int64("contest_id", id),
		logger.Int64("owner_uid", contest.OwnerUID),
	)
	return id, nil
}

func (s *ContestServiceImpl) EditContest(ctx context.Context, param *model.EditContestParam) (*model.Contest, error) {
	contest, err := s.GetContest(ctx, param.DomainID, param.ContestID)
	if err != nil {
		return nil, err
	}

	update := param.Update()
	if update.IsEmpty() {
		return contest, nil
	}

	// 按更新后的结果整体校验, 保证开始时间早于结束时间
	merged := *contest
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Content != nil {
		merged.Content = *update.Content
	}
	if update.Rule != nil {
		merged.Rule = *update.Rule
	}
	if update.BeginAt != nil {
		merged.BeginAt = *update.BeginAt
	}
	if update.EndAt != nil {
		merged.EndAt = *update.EndAt
	}
	if update.PIDs != nil {
		merged.PIDs = update.PIDs
	}
	if err = checkContest(&merged); err != nil {
		return nil, err
	}

	updated, err := s.contests.Update(ctx, param.DomainID, param.ContestID, update)
	if err != nil {
		return nil, fmt.Errorf("EditContest failed at update: %w", err)
	}
	if updated == nil {
		return nil, &errs.ContestNotFoundError{DomainID: param.DomainID, ContestID: param.ContestID}
	}
	return updated, nil
}

func (s *ContestServiceImpl) GetContest(ctx context.Context, domainID string, tid int64) (*model.Contest, error) {
	contest, err := s.contests.Get(ctx, domainID, tid)
	if err != nil {
		return nil, fmt.Errorf("GetContest failed at get: %w", err)
	}
	if contest == nil {
		return nil, &errs.ContestNotFoundError{DomainID: domainID, ContestID: tid}
	}
	return contest, nil
}

func (s *ContestServiceImpl) GetContestList(ctx context.Context, param *model.GetContestListParam) ([]*model.Contest, error) {
	list, err := s.contests.List(ctx, param.DomainID, param.Rule, param.Offset(), param.PageSize)
	if err != nil {
		return nil, fmt.Errorf("GetContestList failed at list: %w", err)
	}
	return list, nil
}

func (s *ContestServiceImpl) AttendContest(ctx context.Context, domainID string, tid, uid int64) (*model.ContestStatus, error) {
	if _, err := s.GetContest(ctx, domainID, tid); err != nil {
		return nil, err
	}

	key := model.StatusKey{DomainID: domainID, ContestID: tid, UserID: uid}
	status, err := s.statuses.Attend(ctx, key)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, &errs.ContestAlreadyAttendedError{DomainID: domainID, ContestID: tid, UserID: uid}
	}
	if err != nil {
		return nil, fmt.Errorf("AttendContest failed at attend: %w", err)
	}

	// 计数与状态文档不在同一次写入中, 出现偏差时由定时任务校正
	if err = s.contests.IncAttend(ctx, domainID, tid, 1); err != nil {
		s.log.WarnContext(ctx, "AttendContest failed at inc attend",
			logger.String("domain_id", domainID),
			logger.Int64("contest_id", tid),
			logger.Error(err),
		)
	}
	return status, nil
}

func (s *ContestServiceImpl) GetStatusMap(ctx context.Context, domainID string, uid int64, tids []int64) (map[int64]*model.ContestStatus, error) {
	result := make(map[int64]*model.ContestStatus, len(tids))
	if len(tids) == 0 {
		return result, nil
	}
	list, err := s.statuses.ListByUser(ctx, domainID, uid, tids)
	if err != nil {
		return nil, fmt.Errorf("GetStatusMap failed at list: %w", err)
	}
	for _, status := range list {
		result[status.TID] = status
	}
	return result, nil
}

func (s *ContestServiceImpl) ConvertProblem(ctx context.Context, param *model.ConvertProblemParam) (*model.ConvertProblemResponse, error) {
	contest, err := s.GetContest(ctx, param.DomainID, param.ContestID)
	if err != nil {
		return nil, err
	}

	switch {
	case param.ProblemID != 0:
		letter, err := contest.LetterOf(param.ProblemID)
		if err != nil {
			return nil, err
		}
		return &model.ConvertProblemResponse{ProblemID: param.ProblemID, Letter: letter}, nil
	case param.Letter != "":
		pid, err := contest.PIDOf(param.Letter)
		if err != nil {
			return nil, err
		}
		return &model.ConvertProblemResponse{ProblemID: pid, Letter: param.Letter}, nil
	}
	return nil, errs.NewValidationError("problem_id", "letter")
}
