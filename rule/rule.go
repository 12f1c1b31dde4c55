package rule

import (
	"slices"
	"time"

	"github.com/to404hanga/online_judge_contest/model"
)

// Rule 赛制, 由注册表在加载比赛时选定
type Rule interface {
	// ID 赛制 id
	ID() model.RuleID
	// Name 赛制名称
	Name() string
	// Show 排行榜在 now 时刻是否可见
	Show(contest *model.Contest, now time.Time) bool
	// Stat 根据去重后的流水计算统计结果
	Stat(contest *model.Contest, journal []model.JournalEntry) model.StatusStats
	// SortKey 排行榜排序键
	SortKey() SortKey
	// Rank 为已排序的选手分配名次与奖牌
	Rank(sorted []*model.ContestStatus, prize PrizeConfig) []RankItem
}

var registry = map[model.RuleID]Rule{
	model.RuleOI:  OI{},
	model.RuleACM: ACM{},
}

// Get 获取已注册的赛制
func Get(id model.RuleID) (Rule, bool) {
	r, ok := registry[id]
	return r, ok
}

// IDs 返回所有已注册赛制 id, 升序
func IDs() []model.RuleID {
	ids := make([]model.RuleID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Text 赛制显示名称, 未注册时返回空串
func Text(id model.RuleID) string {
	if r, ok := registry[id]; ok {
		return r.Name()
	}
	return ""
}
