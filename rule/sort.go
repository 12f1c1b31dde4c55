package rule

import (
	"sort"

	"github.com/to404hanga/online_judge_contest/model"
)

// SortField 排序字段, Desc 为 true 时降序
type SortField struct {
	Field string
	Desc  bool
}

// SortKey 多字段排序键, 前面的字段优先
type SortKey []SortField

func fieldValue(s *model.ContestStatus, field string) int64 {
	switch field {
	case "score":
		return int64(s.Score)
	case "accept":
		return int64(s.Accept)
	case "time":
		return s.Time
	}
	return 0
}

// Less 按排序键比较两条状态
func (k SortKey) Less(a, b *model.ContestStatus) bool {
	for _, f := range k {
		va, vb := fieldValue(a, f.Field), fieldValue(b, f.Field)
		if va == vb {
			continue
		}
		if f.Desc {
			return va > vb
		}
		return va < vb
	}
	return false
}

// Sort 稳定排序, 排序键相同的状态保持读取顺序
func (k SortKey) Sort(statuses []*model.ContestStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		return k.Less(statuses[i], statuses[j])
	})
}
