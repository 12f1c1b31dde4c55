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

type ContestHandler struct {
	contestSvc service.ContestService
	log        loggerv2.Logger
}

var _ Handler = (*ContestHandler)(nil)

func NewContestHandler(contestSvc service.ContestService, log loggerv2.Logger) *ContestHandler {
	return &ContestHandler{
		contestSvc: contestSvc,
		log:        log,
	}
}

func (h *ContestHandler) Register(r *gin.Engine) {
	r.POST(constants.CreateContestPath, gintool.WrapHandler(h.CreateContest, h.log))
	r.POST(constants.EditContestPath, gintool.WrapHandler(h.EditContest, h.log))
	r.GET(constants.GetContestPath, gintool.WrapPublicHandler(h.GetContest, h.log))
	r.GET(constants.GetContestListPath, gintool.WrapPublicHandler(h.GetContestList, h.log))
	r.POST(constants.AttendContestPath, gintool.WrapHandler(h.AttendContest, h.log))
	r.GET(constants.GetStatusMapPath, gintool.WrapPublicHandler(h.GetStatusMap, h.log))
	r.GET(constants.ConvertProblemPath, gintool.WrapPublicHandler(h.ConvertProblem, h.log))
}

func (h *ContestHandler) CreateContest(c *gin.Context, param *model.CreateContestParam) {
	start := time.Now()
	ctx := c.Request.Context()

	tid, err := h.contestSvc.CreateContest(ctx, param)
	observe("CreateContest", start, err)
	if err != nil {
		gintool.GinError(c, "CreateContest", err)
		h.log.ErrorContext(ctx, "CreateContest failed", logger.String("title", param.Title), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, model.CreateContestResponse{ContestID: tid})
}

func (h *ContestHandler) EditContest(c *gin.Context, param *model.EditContestParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.Int64("contest_id", param.ContestID))

	contest, err := h.contestSvc.EditContest(ctx, param)
	observe("EditContest", start, err)
	if err != nil {
		gintool.GinError(c, "EditContest", err)
		h.log.ErrorContext(ctx, "EditContest failed", logger.Error(err))
		return
	}
	gintool.GinSuccess(c, contest)
}

func (h *ContestHandler) GetContest(c *gin.Context, param *model.GetContestParam) {
	start := time.Now()

	contest, err := h.contestSvc.GetContest(c.Request.Context(), param.DomainID, param.ContestID)
	observe("GetContest", start, err)
	if err != nil {
		gintool.GinError(c, "GetContest", err)
		h.log.ErrorContext(c.Request.Context(), "GetContest failed", logger.Int64("contest_id", param.ContestID), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, contest)
}

func (h *ContestHandler) GetContestList(c *gin.Context, param *model.GetContestListParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Int("page", param.Page),
		logger.Int("page_size", param.PageSize),
	)
	if param.Rule != nil {
		ctx = loggerv2.ContextWithFields(ctx, logger.Int32("rule", int32(*param.Rule)))
	}
	h.log.DebugContext(ctx, "GetContestList param")

	list, err := h.contestSvc.GetContestList(ctx, param)
	observe("GetContestList", start, err)
	if err != nil {
		gintool.GinError(c, "GetContestList", err)
		h.log.ErrorContext(ctx, "GetContestList failed", logger.Error(err))
		return
	}
	gintool.GinSuccess(c, model.GetContestListResponse{
		List:     list,
		Page:     param.Page,
		PageSize: param.PageSize,
	})
}

func (h *ContestHandler) AttendContest(c *gin.Context, param *model.AttendContestParam) {
	start := time.Now()
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.Int64("contest_id", param.ContestID))

	status, err := h.contestSvc.AttendContest(ctx, param.DomainID, param.ContestID, param.Operator)
	observe("AttendContest", start, err)
	if err != nil {
		gintool.GinError(c, "AttendContest", err)
		h.log.InfoContext(ctx, "AttendContest failed", logger.Error(err))
		return
	}
	gintool.GinSuccess(c, status)
}

func (h *ContestHandler) GetStatusMap(c *gin.Context, param *model.GetStatusMapParam) {
	start := time.Now()

	statuses, err := h.contestSvc.GetStatusMap(c.Request.Context(), param.DomainID, param.UserID, param.ContestIDs)
	observe("GetStatusMap", start, err)
	if err != nil {
		gintool.GinError(c, "GetStatusMap", err)
		h.log.ErrorContext(c.Request.Context(), "GetStatusMap failed", logger.Int64("uid", param.UserID), logger.Error(err))
		return
	}
	gintool.GinSuccess(c, statuses)
}

func (h *ContestHandler) ConvertProblem(c *gin.Context, param *model.ConvertProblemParam) {
	start := time.Now()

	resp, err := h.contestSvc.ConvertProblem(c.Request.Context(), param)
	observe("ConvertProblem", start, err)
	if err != nil {
		gintool.GinError(c, "ConvertProblem", err)
		return
	}
	gintool.GinSuccess(c, resp)
}
