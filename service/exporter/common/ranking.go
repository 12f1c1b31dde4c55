package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/to404hanga/online_judge_contest/model"
)

// BatchSize 每处理多少行检查一次 ctx
const BatchSize = 1000

// RankingSheet 待导出的排行榜
type RankingSheet struct {
	Contest *model.Contest
	Rows    []model.Ranking
}

// FormatDuration 毫秒格式化为 hh:mm:ss.mmm
func FormatDuration(ms int64) string {
	b := &strings.Builder{}
	b.Grow(12) // %02d:%02d:%02d.%03d 最小长度为 12 字节
	fmt.Fprintf(b, "%02d:%02d:%02d.%03d",
		ms/3600000,
		(ms%3600000)/60000,
		(ms%60000)/1000,
		ms%1000)
	return b.String()
}

// Header 表头, 题目列按题号排列
func Header(contest *model.Contest) []string {
	headers := []string{"名次", "奖牌", "用户 ID", "用户名", "昵称"}
	if contest.Rule == model.RuleACM {
		headers = append(headers, "通过题目数", "总耗时")
	} else {
		headers = append(headers, "总分")
	}
	for idx := range contest.PIDs {
		letter, err := contest.LetterOf(contest.PIDs[idx])
		if err != nil {
			letter = strconv.FormatInt(contest.PIDs[idx], 10)
		}
		headers = append(headers, letter)
	}
	return headers
}

// Record 一行排行榜数据
func Record(contest *model.Contest, row model.Ranking) []string {
	record := []string{
		row.Rank,
		string(row.Prize),
		strconv.FormatInt(row.UserID, 10),
		row.Uname,
		row.Nickname,
	}
	if contest.Rule == model.RuleACM {
		record = append(record, strconv.Itoa(row.Accept), FormatDuration(row.Time))
	} else {
		record = append(record, strconv.Itoa(row.Score))
	}

	problems := make(map[int64]model.RankingProblem, len(row.Problems))
	for _, p := range row.Problems {
		problems[p.ProblemID] = p
	}
	for _, pid := range contest.PIDs {
		p, ok := problems[pid]
		record = append(record, problemCell(contest.Rule, p, ok))
	}
	return record
}

func problemCell(rule model.RuleID, p model.RankingProblem, ok bool) string {
	if !ok {
		return ""
	}
	if rule != model.RuleACM {
		return strconv.Itoa(p.Score)
	}
	if p.Accept {
		return fmt.Sprintf("+%d %s", p.NAccept, FormatDuration(p.Time))
	}
	return fmt.Sprintf("-%d", p.NAccept)
}

// CheckBatch 每 BatchSize 行检查一次 ctx 是否结束
func CheckBatch(ctx context.Context, idx int) error {
	if idx%BatchSize != 0 {
		return nil
	}
	return ctx.Err()
}
