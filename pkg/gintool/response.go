package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/to404hanga/online_judge_contest/errs"
)

type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
}

func GinResponse(c *gin.Context, resp *Response) {
	resp.RequestID = RequestID(c)
	c.JSON(http.StatusOK, resp)
}

// GinSuccess 成功响应
func GinSuccess(c *gin.Context, data any) {
	GinResponse(c, &Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// GinError 按错误类型响应对应的状态码
func GinError(c *gin.Context, op string, err error) {
	GinResponse(c, &Response{
		Code:    errs.HTTPStatus(err),
		Message: op + " failed: " + err.Error(),
	})
}
