package factory

import (
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/service/exporter"
	"github.com/to404hanga/online_judge_contest/service/exporter/csv"
	"github.com/to404hanga/online_judge_contest/service/exporter/xlsx"
)

type RankingExporterType string

const (
	CSVRankingExporter  RankingExporterType = "csv"
	XLSXRankingExporter RankingExporterType = "xlsx"
)

var ExporterSuffixMap = map[RankingExporterType]string{
	CSVRankingExporter:  ".csv",
	XLSXRankingExporter: ".xlsx",
}

var ContentTypeMap = map[RankingExporterType]string{
	CSVRankingExporter:  "text/csv; charset=utf-8",
	XLSXRankingExporter: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type RankingExporterFactory struct {
	factory map[RankingExporterType]exporter.RankingExporter
}

func NewRankingExporterFactory(log loggerv2.Logger) *RankingExporterFactory {
	return &RankingExporterFactory{
		factory: map[RankingExporterType]exporter.RankingExporter{
			CSVRankingExporter:  csv.NewStreamableCSVRankingExporter(log),
			XLSXRankingExporter: xlsx.NewStreamableXLSXRankingExporter(log),
		},
	}
}

// GetRankingExporter 未知类型返回 nil
func (f *RankingExporterFactory) GetRankingExporter(exporterType RankingExporterType) exporter.RankingExporter {
	return f.factory[exporterType]
}
