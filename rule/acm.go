package rule

import (
	"time"

	"github.com/to404hanga/online_judge_contest/model"
)

// PenaltyTime 每次错误提交的罚时
const PenaltyTime = 20 * time.Minute

// ACM ACM-ICPC 赛制
type ACM struct{}

var _ Rule = ACM{}

func (ACM) ID() model.RuleID { return model.RuleACM }

func (ACM) Name() string { return "ACM-ICPC" }

// Show 比赛开始后即公布排行榜
func (ACM) Show(contest *model.Contest, now time.Time) bool {
	return !now.Before(contest.BeginAt)
}

// Stat 每题取首次通过的提交, 未通过前的每次错误提交记一次罚时
func (ACM) Stat(contest *model.Contest, journal []model.JournalEntry) model.StatusStats {
	order := make([]int64, 0, len(contest.PIDs))
	naccept := make(map[int64]int, len(contest.PIDs))
	effective := make(map[int64]model.JournalEntry, len(contest.PIDs))
	for _, j := range journal {
		if !contest.HasProblem(j.PID) {
			continue
		}
		prev, seen := effective[j.PID]
		if seen && prev.Accept {
			continue
		}
		if !seen {
			order = append(order, j.PID)
		}
		effective[j.PID] = j
		if !j.Accept {
			naccept[j.PID]++
		}
	}

	stats := model.StatusStats{Detail: make([]model.StatusDetail, 0, len(order))}
	for _, pid := range order {
		j := effective[pid]
		elapsed := j.RID.Timestamp().Sub(contest.BeginAt) + PenaltyTime*time.Duration(naccept[pid])
		d := model.StatusDetail{
			RID:     j.RID,
			PID:     j.PID,
			Accept:  j.Accept,
			Score:   j.Score,
			NAccept: naccept[pid],
			Time:    elapsed.Milliseconds(),
		}
		stats.Detail = append(stats.Detail, d)
		if d.Accept {
			stats.Accept++
			stats.Time += d.Time
		}
	}
	return stats
}

// SortKey 通过题数降序, 总用时升序
func (ACM) SortKey() SortKey {
	return SortKey{{Field: "accept", Desc: true}, {Field: "time"}}
}

func (ACM) Rank(sorted []*model.ContestStatus, prize PrizeConfig) []RankItem {
	return AssignRank(sorted, prize)
}
