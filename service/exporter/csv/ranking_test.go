package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"

	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/service/exporter/common"
)

func TestStreamableCSVRankingExporter(t *testing.T) {
	contest := &model.Contest{ID: 1, Rule: model.RuleACM, PIDs: []int64{10, 20}}
	sheet := &common.RankingSheet{
		Contest: contest,
		Rows: []model.Ranking{
			{
				Rank: "1", Prize: model.PrizeGold, UserID: 7, Uname: "alice",
				Accept: 1, Time: 3723004,
				Problems: []model.RankingProblem{
					{ProblemID: 10, Accept: true, NAccept: 2, Time: 3723004},
					{ProblemID: 20, NAccept: 1},
				},
			},
			{Rank: "*", UserID: 8},
		},
	}

	var buf bytes.Buffer
	if err := NewStreamableCSVRankingExporter(loggerv2.NewZapContextLogger(zap.NewNop())).Export(context.Background(), sheet, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %v", records)
	}
	want := []string{"1", "gold", "7", "alice", "", "1", "01:02:03.004", "+2 01:02:03.004", "-1"}
	for i, v := range want {
		if records[1][i] != v {
			t.Fatalf("row[%d] = %q, want %q (row %v)", i, records[1][i], v, records[1])
		}
	}
	if records[0][7] != "A" || records[0][8] != "B" {
		t.Fatalf("header = %v", records[0])
	}
	if records[2][0] != "*" || records[2][7] != "" {
		t.Fatalf("unranked row = %v", records[2])
	}
}
