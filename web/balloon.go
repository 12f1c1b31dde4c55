package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/pkg/gintool"
	"github.com/to404hanga/online_judge_contest/service"
)

type BalloonHandler struct {
	balloonSvc service.BalloonService
	log        loggerv2.Logger
}

var _ Handler = (*BalloonHandler)(nil)

func NewBalloonHandler(balloonSvc service.BalloonService, log loggerv2.Logger) *BalloonHandler {
	return &BalloonHandler{
		balloonSvc: balloonSvc,
		log:        log,
	}
}

func (h *BalloonHandler) Register(r *gin.Engine) {
	r.POST(constants.SetBalloonPath, gintool.WrapHandler(h.SetBalloon, h.log))
	r.GET(constants.GetPendingBalloonListPath, gintool.WrapHandler(h.GetPendingBalloonList, h.log))
}

func (h *BalloonHandler) SetBalloon(c *gin.Context, param *model.SetBalloonParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Int64("contest_id", param.ContestID),
		logger.Int64("uid", param.UserID),
		logger.Int64("pid", param.ProblemID),
	)

	status, err := h.balloonSvc.SetBalloon(ctx, param.Key(), param.ProblemID, *param.Delivered)
	observe("SetBalloon", start, err)
	if err != nil {
		gintool.GinError(c, "SetBalloon", err)
		h.log.ErrorContext(ctx, "SetBalloon failed", logger.Error(err))
		return
	}
	if status == nil {
		h.log.InfoContext(ctx, "SetBalloon no detail for problem")
	}
	gintool.GinSuccess(c, status)
}

func (h *BalloonHandler) GetPendingBalloonList(c *gin.Context, param *model.GetPendingBalloonListParam) {
	start := time.Now()

	list, err := h.balloonSvc.GetPendingBalloonList(c.Request.Context(), param.DomainID, param.ContestID)
	observe("GetPendingBalloonList", start, err)
	if err != nil {
		gintool.GinError(c, "GetPendingBalloonList", err)
		h.log.ErrorContext(c.Request.Context(), "GetPendingBalloonList failed", logger.Int64("contest_id", param.ContestID), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, list)
}
