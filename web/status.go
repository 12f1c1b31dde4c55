package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/pkg/gintool"
	"github.com/to404hanga/online_judge_contest/service"
)

type StatusHandler struct {
	statusSvc service.StatusService
	log       loggerv2.Logger
}

var _ Handler = (*StatusHandler)(nil)

func NewStatusHandler(statusSvc service.StatusService, log loggerv2.Logger) *StatusHandler {
	return &StatusHandler{
		statusSvc: statusSvc,
		log:       log,
	}
}

func (h *StatusHandler) Register(r *gin.Engine) {
	r.POST(constants.UpdateStatusPath, gintool.WrapHandler(h.UpdateStatus, h.log))
	r.GET(constants.GetStatusPath, gintool.WrapPublicHandler(h.GetStatus, h.log))
	r.POST(constants.RemoveStatusPath, gintool.WrapHandler(h.RemoveStatus, h.log))
	r.POST(constants.SetRankedPath, gintool.WrapHandler(h.SetRanked, h.log))
}

func (h *StatusHandler) UpdateStatus(c *gin.Context, param *model.UpdateStatusParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Int64("contest_id", param.ContestID),
		logger.Int64("uid", param.UserID),
		logger.String("rid", param.RID.Hex()),
	)

	status, err := h.statusSvc.UpdateStatus(ctx, param)
	observe("UpdateStatus", start, err)
	updateStatusTotal.WithLabelValues(statusCode(err), errs.Reason(err), strconv.FormatBool(param.Accept)).Inc()
	if err != nil {
		gintool.GinError(c, "UpdateStatus", err)
		var notAttended *errs.ContestNotAttendedError
		if errors.As(err, &notAttended) {
			h.log.WarnContext(ctx, "UpdateStatus journal appended without attendance", logger.Error(err))
			return
		}
		h.log.ErrorContext(ctx, "UpdateStatus failed", logger.Error(err))
		return
	}
	// 状态不存在时 status 为 nil, 结果已被忽略
	gintool.GinSuccess(c, status)
}

func (h *StatusHandler) GetStatus(c *gin.Context, param *model.StatusUserParam) {
	start := time.Now()

	status, err := h.statusSvc.GetStatus(c.Request.Context(), param.Key())
	if err == nil && status == nil {
		err = &errs.UserNotFoundError{UserID: param.UserID}
	}
	observe("GetStatus", start, err)
	if err != nil {
		gintool.GinError(c, "GetStatus", err)
		return
	}
	gintool.GinSuccess(c, status)
}

func (h *StatusHandler) RemoveStatus(c *gin.Context, param *model.StatusUserParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Int64("contest_id", param.ContestID),
		logger.Int64("uid", param.UserID),
	)

	err := h.statusSvc.RemoveStatus(ctx, param.Key())
	observe("RemoveStatus", start, err)
	if err != nil {
		gintool.GinError(c, "RemoveStatus", err)
		h.log.ErrorContext(ctx, "RemoveStatus failed", logger.Error(err))
		return
	}
	h.log.InfoContext(ctx, "RemoveStatus by operator", logger.Int64("operator", param.Operator))
	gintool.GinSuccess(c, nil)
}

func (h *StatusHandler) SetRanked(c *gin.Context, param *model.SetRankedParam) {
	start := time.Now()

	status, err := h.statusSvc.SetRanked(c.Request.Context(), param.Key(), *param.Ranked)
	observe("SetRanked", start, err)
	if err != nil {
		gintool.GinError(c, "SetRanked", err)
		h.log.ErrorContext(c.Request.Context(), "SetRanked failed", logger.Int64("uid", param.UserID), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, status)
}
