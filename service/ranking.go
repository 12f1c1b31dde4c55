package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
	"github.com/to404hanga/online_judge_contest/rule"
	"github.com/to404hanga/online_judge_contest/service/exporter/common"
	"github.com/to404hanga/online_judge_contest/service/exporter/factory"
)

type RankingService interface {
	// GetRanking 计算比赛的完整排名, 不检查可见性
	GetRanking(ctx context.Context, contest *model.Contest) ([]rule.RankItem, error)
	// GetRankingList 分页获取排行榜, 排行榜不可见时返回 ContestScoreboardHiddenError
	GetRankingList(ctx context.Context, param *model.GetRankingListParam) (*model.GetRankingListResponse, error)
	// IsVisible 排行榜在 now 时刻是否可见
	IsVisible(contest *model.Contest, now time.Time) bool
	// Export 导出排行榜
	Export(ctx context.Context, param *model.ExportRankingParam, writer io.Writer) error
}

// RankingServiceImpl 排行榜服务实现, 每次读取时基于选手状态重新计算
type RankingServiceImpl struct {
	contests        repository.ContestRepository
	statuses        repository.StatusRepository
	users           repository.UserDirectory
	prize           rule.PrizeConfig
	log             loggerv2.Logger
	exporterFactory *factory.RankingExporterFactory
	now             func() time.Time
}

var _ RankingService = (*RankingServiceImpl)(nil)

func NewRankingService(contests repository.ContestRepository, statuses repository.StatusRepository, users repository.UserDirectory, prize rule.PrizeConfig, log loggerv2.Logger) RankingService {
	return &RankingServiceImpl{
		contests:        contests,
		statuses:        statuses,
		users:           users,
		prize:           prize,
		log:             log,
		exporterFactory: factory.NewRankingExporterFactory(log),
		now:             time.Now,
	}
}

func (s *RankingServiceImpl) GetRanking(ctx context.Context, contest *model.Contest) ([]rule.RankItem, error) {
	r, ok := rule.Get(contest.Rule)
	if !ok {
		return nil, fmt.Errorf("GetRanking failed: unknown rule %d of contest %d", contest.Rule, contest.ID)
	}

	var statuses []*model.ContestStatus
	for status, err := range s.statuses.ListByContest(ctx, contest.DomainID, contest.ID) {
		if err != nil {
			return nil, fmt.Errorf("GetRanking failed at list status: %w", err)
		}
		if !status.IsAttended() {
			continue
		}
		statuses = append(statuses, status)
	}

	r.SortKey().Sort(statuses)
	return r.Rank(statuses, s.prize), nil
}

func (s *RankingServiceImpl) IsVisible(contest *model.Contest, now time.Time) bool {
	r, ok := rule.Get(contest.Rule)
	if !ok {
		return false
	}
	return r.Show(contest, now)
}

// visibleContest 获取比赛并检查排行榜可见性
func (s *RankingServiceImpl) visibleContest(ctx context.Context, domainID string, tid int64) (*model.Contest, error) {
	contest, err := s.contests.Get(ctx, domainID, tid)
	if err != nil {
		return nil, fmt.Errorf("get contest failed: %w", err)
	}
	if contest == nil {
		return nil, &errs.ContestNotFoundError{DomainID: domainID, ContestID: tid}
	}
	if !s.IsVisible(contest, s.now()) {
		return nil, &errs.ContestScoreboardHiddenError{ContestID: tid}
	}
	return contest, nil
}

// toRanking 转换为展示数据, 用户信息查询失败时留空
func (s *RankingServiceImpl) toRanking(ctx context.Context, contest *model.Contest, item rule.RankItem) model.Ranking {
	status := item.Status
	row := model.Ranking{
		Rank:     item.DisplayRank(),
		Prize:    item.Prize,
		UserID:   status.UID,
		Score:    status.Score,
		Accept:   status.Accept,
		Time:     status.Time,
		Problems: make([]model.RankingProblem, 0, len(status.Detail)),
	}
	for _, d := range status.Detail {
		letter := problemLetter(ctx, s.log, contest, d.PID)
		row.Problems = append(row.Problems, model.RankingProblem{
			ProblemID: d.PID,
			Letter:    letter,
			Accept:    d.Accept,
			Score:     d.Score,
			NAccept:   d.NAccept,
			Time:      d.Time,
			Balloon:   d.Balloon,
		})
	}

	user, err := s.users.GetUser(ctx, status.UID)
	if err != nil {
		s.log.WarnContext(ctx, "toRanking failed at get user", logger.Int64("user_id", status.UID), logger.Error(err))
		return row
	}
	row.Uname = user.Uname
	row.Nickname = user.Nickname
	return row
}

func (s *RankingServiceImpl) GetRankingList(ctx context.Context, param *model.GetRankingListParam) (*model.GetRankingListResponse, error) {
	contest, err := s.visibleContest(ctx, param.DomainID, param.ContestID)
	if err != nil {
		return nil, fmt.Errorf("GetRankingList failed: %w", err)
	}
	items, err := s.GetRanking(ctx, contest)
	if err != nil {
		return nil, err
	}

	resp := &model.GetRankingListResponse{
		List:     make([]model.Ranking, 0, param.PageSize),
		Total:    len(items),
		Page:     param.Page,
		PageSize: param.PageSize,
	}
	start := min(param.Offset(), len(items))
	end := min(start+param.PageSize, len(items))
	for _, item := range items[start:end] {
		resp.List = append(resp.List, s.toRanking(ctx, contest, item))
	}
	return resp, nil
}

func (s *RankingServiceImpl) Export(ctx context.Context, param *model.ExportRankingParam, writer io.Writer) error {
	exp := s.exporterFactory.GetRankingExporter(factory.RankingExporterType(param.Format))
	if exp == nil {
		return errs.NewValidationError("format")
	}
	contest, err := s.visibleContest(ctx, param.DomainID, param.ContestID)
	if err != nil {
		return fmt.Errorf("Export failed: %w", err)
	}
	items, err := s.GetRanking(ctx, contest)
	if err != nil {
		return err
	}

	sheet := &common.RankingSheet{
		Contest: contest,
		Rows:    make([]model.Ranking, 0, len(items)),
	}
	for _, item := range items {
		sheet.Rows = append(sheet.Rows, s.toRanking(ctx, contest, item))
	}
	if err = exp.Export(ctx, sheet, writer); err != nil {
		return fmt.Errorf("Export failed at %s exporter: %w", param.Format, err)
	}
	return nil
}
