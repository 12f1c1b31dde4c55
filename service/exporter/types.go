package exporter

import (
	"context"
	"io"

	"github.com/to404hanga/online_judge_contest/service/exporter/common"
)

type RankingExporter interface {
	Export(ctx context.Context, sheet *common.RankingSheet, writer io.Writer) error
}
