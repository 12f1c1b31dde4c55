package gintool

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/constants"
)

// RequestIDMiddleware 为缺少 X-Request-ID 的请求生成请求 ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextRequestIDKey, requestID)
		c.Header(constants.HeaderRequestIDKey, requestID)

		// 后续日志通过 XxxContext 自动带上请求 ID 与用户 ID
		fields := []logger.Field{logger.String("request_id", requestID)}
		if userID := c.GetHeader(constants.HeaderUserIDKey); userID != "" {
			fields = append(fields, logger.String("user_id", userID))
		}
		c.Request = c.Request.WithContext(loggerv2.ContextWithFields(c.Request.Context(), fields...))
		c.Next()
	}
}

// AccessLogMiddleware 请求结束后记录访问日志
func AccessLogMiddleware(log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.InfoContext(c.Request.Context(), "access",
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Int("status", c.Writer.Status()),
			logger.Any("latency", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}
