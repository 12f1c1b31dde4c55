package rule

import (
	"strconv"

	"github.com/to404hanga/online_judge_contest/model"
)

// PrizeConfig 奖牌名额, 金银铜依次累加
type PrizeConfig struct {
	Gold   int `yaml:"gold" mapstructure:"gold"`
	Silver int `yaml:"silver" mapstructure:"silver"`
	Bronze int `yaml:"bronze" mapstructure:"bronze"`
}

func (PrizeConfig) Key() string {
	return "prize"
}

// prizeAt 按当前名次计数返回奖牌
func (p PrizeConfig) prizeAt(now int) model.Prize {
	gold := p.Gold
	silver := gold + p.Silver
	bronze := silver + p.Bronze
	switch {
	case now <= gold:
		return model.PrizeGold
	case now <= silver:
		return model.PrizeSilver
	case now <= bronze:
		return model.PrizeBronze
	}
	return model.PrizeNone
}

// RankItem 排名结果
type RankItem struct {
	Rank   int // Ranked 为 false 时无意义
	Ranked bool
	Prize  model.Prize
	Status *model.ContestStatus
}

// DisplayRank 显示名次, 不参与排名时为 "*"
func (r RankItem) DisplayRank() string {
	if !r.Ranked {
		return model.UnrankedMark
	}
	return strconv.Itoa(r.Rank)
}

// AssignRank 顺序分配名次与奖牌.
// 每一行都按当前计数 now 判定奖牌; 只有参与排名的行占用名次并使 now 加一,
// 因此不参与排名的行会拿到与其后一名参与排名选手相同的奖牌.
func AssignRank(sorted []*model.ContestStatus, prize PrizeConfig) []RankItem {
	items := make([]RankItem, 0, len(sorted))
	now := 1
	for _, s := range sorted {
		item := RankItem{
			Prize:  prize.prizeAt(now),
			Status: s,
		}
		if s.IsRanked() {
			item.Rank = now
			item.Ranked = true
			now++
		}
		items = append(items, item)
	}
	return items
}
