package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/pkg/gintool"
	"github.com/to404hanga/online_judge_contest/service"
	"github.com/to404hanga/online_judge_contest/service/exporter/factory"
)

type RankingHandler struct {
	rankingSvc service.RankingService
	log        loggerv2.Logger
}

var _ Handler = (*RankingHandler)(nil)

func NewRankingHandler(rankingSvc service.RankingService, log loggerv2.Logger) *RankingHandler {
	return &RankingHandler{
		rankingSvc: rankingSvc,
		log:        log,
	}
}

func (h *RankingHandler) Register(r *gin.Engine) {
	r.GET(constants.GetRankingListPath, gintool.WrapPublicHandler(h.GetRankingList, h.log))
	r.GET(constants.ExportRankingPath, gintool.WrapHandler(h.ExportRanking, h.log))
}

func (h *RankingHandler) GetRankingList(c *gin.Context, param *model.GetRankingListParam) {
	start := time.Now()

	resp, err := h.rankingSvc.GetRankingList(c.Request.Context(), param)
	observe("GetRankingList", start, err)
	if err != nil {
		gintool.GinError(c, "GetRankingList", err)
		h.log.InfoContext(c.Request.Context(), "GetRankingList failed", logger.Int64("contest_id", param.ContestID), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, resp)
}

func (h *RankingHandler) ExportRanking(c *gin.Context, param *model.ExportRankingParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Int64("contest_id", param.ContestID),
		logger.String("format", param.Format),
	)

	// 先写入缓冲区, 导出失败时仍可返回 JSON 错误
	var buf bytes.Buffer
	err := h.rankingSvc.Export(ctx, param, &buf)
	observe("ExportRanking", start, err)
	if err != nil {
		gintool.GinError(c, "ExportRanking", err)
		h.log.ErrorContext(ctx, "ExportRanking failed", logger.Error(err))
		return
	}
	exportRankingBytes.WithLabelValues(param.Format).Observe(float64(buf.Len()))

	exporterType := factory.RankingExporterType(param.Format)
	filename := fmt.Sprintf("contest_%d_ranking%s", param.ContestID, factory.ExporterSuffixMap[exporterType])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, factory.ContentTypeMap[exporterType], buf.Bytes())
}
