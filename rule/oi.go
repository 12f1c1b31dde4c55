package rule

import (
	"time"

	"github.com/to404hanga/online_judge_contest/model"
)

// OI 赛制, 每题以最后一次评测结果为准
type OI struct{}

var _ Rule = OI{}

func (OI) ID() model.RuleID { return model.RuleOI }

func (OI) Name() string { return "OI" }

// Show 比赛结束后才公布排行榜
func (OI) Show(contest *model.Contest, now time.Time) bool {
	return !now.Before(contest.EndAt)
}

// Stat 按题目去重保留最后一条流水并累加分数, 即使后一次分数更低
func (OI) Stat(contest *model.Contest, journal []model.JournalEntry) model.StatusStats {
	order := make([]int64, 0, len(contest.PIDs))
	last := make(map[int64]model.JournalEntry, len(contest.PIDs))
	for _, j := range journal {
		if !contest.HasProblem(j.PID) {
			continue
		}
		if _, ok := last[j.PID]; !ok {
			order = append(order, j.PID)
		}
		last[j.PID] = j
	}

	stats := model.StatusStats{Detail: make([]model.StatusDetail, 0, len(order))}
	for _, pid := range order {
		j := last[pid]
		stats.Detail = append(stats.Detail, model.StatusDetail{
			RID:    j.RID,
			PID:    j.PID,
			Accept: j.Accept,
			Score:  j.Score,
		})
		stats.Score += j.Score
	}
	return stats
}

func (OI) SortKey() SortKey {
	return SortKey{{Field: "score", Desc: true}}
}

func (OI) Rank(sorted []*model.ContestStatus, prize PrizeConfig) []RankItem {
	return AssignRank(sorted, prize)
}
