package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError 参数校验失败, Fields 为出错的字段名
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// ContestNotFoundError 比赛不存在
type ContestNotFoundError struct {
	DomainID  string
	ContestID int64
}

func (e *ContestNotFoundError) Error() string {
	return fmt.Sprintf("contest %s/%d not found", e.DomainID, e.ContestID)
}

// ContestAlreadyAttendedError 重复参加比赛
type ContestAlreadyAttendedError struct {
	DomainID  string
	ContestID int64
	UserID    int64
}

func (e *ContestAlreadyAttendedError) Error() string {
	return fmt.Sprintf("user %d already attended contest %s/%d", e.UserID, e.DomainID, e.ContestID)
}

// ContestNotAttendedError 用户未参加比赛, 评测结果已记录但不计分
type ContestNotAttendedError struct {
	DomainID  string
	ContestID int64
	UserID    int64
}

func (e *ContestNotAttendedError) Error() string {
	return fmt.Sprintf("user %d has not attended contest %s/%d", e.UserID, e.DomainID, e.ContestID)
}

// UserNotFoundError 用户不存在
type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.UserID)
}

// ContestProblemNotFoundError 比赛题目不存在, Ref 为题目 id 或题号字母
type ContestProblemNotFoundError struct {
	Ref string
}

func (e *ContestProblemNotFoundError) Error() string {
	return fmt.Sprintf("contest problem %s not found", e.Ref)
}

// ContestScoreboardHiddenError 当前时刻排行榜不可见
type ContestScoreboardHiddenError struct {
	ContestID int64
}

func (e *ContestScoreboardHiddenError) Error() string {
	return fmt.Sprintf("scoreboard of contest %d is hidden", e.ContestID)
}

// HTTPStatus 将领域错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr      *ValidationError
		contestNotFound    *ContestNotFoundError
		alreadyAttended    *ContestAlreadyAttendedError
		notAttended        *ContestNotAttendedError
		userNotFound       *UserNotFoundError
		problemNotFoundErr *ContestProblemNotFoundError
		scoreboardHidden   *ContestScoreboardHiddenError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &contestNotFound),
		errors.As(err, &userNotFound),
		errors.As(err, &problemNotFoundErr):
		return http.StatusNotFound
	case errors.As(err, &alreadyAttended):
		return http.StatusConflict
	case errors.As(err, &notAttended),
		errors.As(err, &scoreboardHidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Reason 返回用于指标标签的错误分类
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var scoreboardHidden *ContestScoreboardHiddenError
	if errors.As(err, &scoreboardHidden) {
		return "hidden"
	}
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusForbidden:
		return "not_attended"
	}
	return "internal"
}
