package gintool

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 校验错误中使用 json 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate 校验参数, 失败时返回 errs.ValidationError
func Validate(param any) error {
	err := validate.Struct(param)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make([]string, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, fe.Field())
	}
	return errs.NewValidationError(fields...)
}

// Param 可绑定的请求参数, PT 为 *T
type Param[T any] interface {
	*T
	model.CommonParamInterface
}

func badRequest(c *gin.Context, log loggerv2.Logger, msg string, err error) {
	GinResponse(c, &Response{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
	log.ErrorContext(c.Request.Context(), msg, logger.Error(err))
}

// bind 依次绑定 URI, Query 与 JSON, 并写入操作人与域
func bind[T any, PT Param[T]](c *gin.Context, log loggerv2.Logger, requireOperator bool) (PT, bool) {
	param := PT(new(T))
	// 1) URI
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(param); err != nil {
			badRequest(c, log, "WrapHandler bind uri failed", err)
			return nil, false
		}
	}

	// 2) Query/Form
	if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
		if err := c.ShouldBindQuery(param); err != nil {
			badRequest(c, log, "WrapHandler bind query failed", err)
			return nil, false
		}
	}

	// 3) JSON
	if c.Request.Method != http.MethodGet && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(param); err != nil {
			badRequest(c, log, "WrapHandler bind json failed", err)
			return nil, false
		}
	}

	ExtractDomain(c, param)
	if err := ExtractOperator(c, param); err != nil && requireOperator {
		badRequest(c, log, "WrapHandler ExtractOperator failed", err)
		return nil, false
	}

	if err := Validate(param); err != nil {
		GinError(c, "Validate", err)
		log.InfoContext(c.Request.Context(), "WrapHandler validate failed", logger.Error(err))
		return nil, false
	}
	return param, true
}

// WrapHandler 包装处理函数, 要求请求携带 X-User-ID
func WrapHandler[T any, PT Param[T]](h func(c *gin.Context, param PT), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param, ok := bind[T, PT](c, log, true)
		if !ok {
			return
		}
		h(c, param)
	}
}

// WrapPublicHandler 包装处理函数, 未携带 X-User-ID 时操作人为 0
func WrapPublicHandler[T any, PT Param[T]](h func(c *gin.Context, param PT), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param, ok := bind[T, PT](c, log, false)
		if !ok {
			return
		}
		h(c, param)
	}
}
