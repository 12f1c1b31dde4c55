package gintool

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/to404hanga/online_judge_contest/constants"
	"github.com/to404hanga/online_judge_contest/model"
)

// RequestID 返回当前请求的请求 ID
func RequestID(c *gin.Context) string {
	if id := c.GetString(constants.ContextRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(constants.HeaderRequestIDKey)
}

// ExtractOperator 从 Gin 上下文提取操作人 ID
func ExtractOperator(c *gin.Context, p model.CommonParamInterface) error {
	userID := c.GetHeader(constants.HeaderUserIDKey)
	if userID == "" {
		return fmt.Errorf("X-User-ID header is required")
	}
	operator, err := strconv.ParseInt(userID, 10, 64)
	if err != nil || operator <= 0 {
		return fmt.Errorf("X-User-ID header is not a valid user id, X-User-ID: %s", userID)
	}
	p.SetOperator(operator)
	return nil
}

// ExtractDomain 从 Gin 上下文提取域, 缺省为 system
func ExtractDomain(c *gin.Context, p model.CommonParamInterface) {
	domainID := c.GetHeader(constants.HeaderDomainIDKey)
	if domainID == "" {
		domainID = constants.DefaultDomainID
	}
	p.SetDomainID(domainID)
}
