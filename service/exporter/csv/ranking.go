package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/service/exporter"
	"github.com/to404hanga/online_judge_contest/service/exporter/common"
)

type StreamableCSVRankingExporter struct {
	log loggerv2.Logger
}

var _ exporter.RankingExporter = (*StreamableCSVRankingExporter)(nil)

func NewStreamableCSVRankingExporter(log loggerv2.Logger) *StreamableCSVRankingExporter {
	return &StreamableCSVRankingExporter{
		log: log,
	}
}

func (e *StreamableCSVRankingExporter) Export(ctx context.Context, sheet *common.RankingSheet, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write(common.Header(sheet.Contest)); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for idx, row := range sheet.Rows {
		if err := common.CheckBatch(ctx, idx); err != nil {
			return fmt.Errorf("export canceled: %w", err)
		}
		if err := csvWriter.Write(common.Record(sheet.Contest, row)); err != nil {
			return fmt.Errorf("write record failed: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv failed: %w", err)
	}
	e.log.DebugContext(ctx, "csv ranking exported",
		logger.Int64("contest_id", sheet.Contest.ID),
		logger.Int("rows", len(sheet.Rows)),
	)
	return nil
}
