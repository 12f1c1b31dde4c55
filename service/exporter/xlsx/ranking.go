package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"github.com/xuri/excelize/v2"

	"github.com/to404hanga/online_judge_contest/service/exporter"
	"github.com/to404hanga/online_judge_contest/service/exporter/common"
)

const sheetName = "排名"

type StreamableXLSXRankingExporter struct {
	log loggerv2.Logger
}

var _ exporter.RankingExporter = (*StreamableXLSXRankingExporter)(nil)

func NewStreamableXLSXRankingExporter(log loggerv2.Logger) *StreamableXLSXRankingExporter {
	return &StreamableXLSXRankingExporter{
		log: log,
	}
}

func (e *StreamableXLSXRankingExporter) Export(ctx context.Context, sheet *common.RankingSheet, writer io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet failed: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer failed: %w", err)
	}
	if err = e.writeHeader(f, sw, common.Header(sheet.Contest)); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for idx, row := range sheet.Rows {
		if err = common.CheckBatch(ctx, idx); err != nil {
			return fmt.Errorf("export canceled: %w", err)
		}
		record := common.Record(sheet.Contest, row)
		values := make([]any, len(record))
		for i, v := range record {
			values[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, idx+2) // 第一行是表头
		if err != nil {
			return fmt.Errorf("get cell name failed: %w", err)
		}
		if err = sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("set row failed: %w", err)
		}
	}

	if err = sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer failed: %w", err)
	}
	if err = f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

// writeHeader 写入表头并设置列宽
func (e *StreamableXLSXRankingExporter) writeHeader(f *excelize.File, sw *excelize.StreamWriter, headers []string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	// 列宽须在写入任何行之前设置
	if err = sw.SetColWidth(1, 5, 15); err != nil {
		return fmt.Errorf("set column width failed: %w", err)
	}
	if len(headers) > 5 {
		if err = sw.SetColWidth(6, len(headers), 18); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	return sw.SetRow("A1", cells)
}
