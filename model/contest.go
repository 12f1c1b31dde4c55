package model

import (
	"strconv"
	"time"

	"github.com/to404hanga/online_judge_contest/errs"
)

// RuleID 比赛赛制
type RuleID int32

const (
	RuleOI  RuleID = 2
	RuleACM RuleID = 3
)

// Contest 比赛文档
type Contest struct {
	ID       int64     `bson:"_id" json:"id"`
	DomainID string    `bson:"domain_id" json:"domain_id"`
	Title    string    `bson:"title" json:"title"`
	Content  string    `bson:"content" json:"content"`
	OwnerUID int64     `bson:"owner_uid" json:"owner_uid"`
	Rule     RuleID    `bson:"rule" json:"rule"`
	Private  bool      `bson:"private" json:"private"`
	BeginAt  time.Time `bson:"begin_at" json:"begin_at"`
	EndAt    time.Time `bson:"end_at" json:"end_at"`
	PIDs     []int64   `bson:"pids" json:"pids"` // 题目顺序决定题号 A, B, C...
	Attend   int64     `bson:"attend" json:"attend"`
}

// HasProblem 判断题目是否属于比赛
func (c *Contest) HasProblem(pid int64) bool {
	for _, p := range c.PIDs {
		if p == pid {
			return true
		}
	}
	return false
}

// LetterOf 题目 id 转题号
func (c *Contest) LetterOf(pid int64) (string, error) {
	for idx, p := range c.PIDs {
		if p == pid {
			if idx >= 26 {
				break
			}
			return string(rune('A' + idx)), nil
		}
	}
	return "", &errs.ContestProblemNotFoundError{Ref: strconv.FormatInt(pid, 10)}
}

// PIDOf 题号转题目 id
func (c *Contest) PIDOf(letter string) (int64, error) {
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return 0, &errs.ContestProblemNotFoundError{Ref: letter}
	}
	idx := int(letter[0] - 'A')
	if idx >= len(c.PIDs) {
		return 0, &errs.ContestProblemNotFoundError{Ref: letter}
	}
	return c.PIDs[idx], nil
}

// ContestUpdate 比赛的部分更新, nil 字段不修改
type ContestUpdate struct {
	Title   *string
	Content *string
	Rule    *RuleID
	Private *bool
	BeginAt *time.Time
	EndAt   *time.Time
	PIDs    []int64
}

// IsEmpty 是否没有任何需要更新的字段
func (u *ContestUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Rule == nil && u.Private == nil &&
		u.BeginAt == nil && u.EndAt == nil && u.PIDs == nil
}

type CreateContestParam struct {
	CommonParam `json:"-"`

	Title   string    `json:"title" validate:"required,max=64"`
	Content string    `json:"content" validate:"required,max=65536"`
	Rule    RuleID    `json:"rule" validate:"required"`
	Private bool      `json:"private"`
	BeginAt time.Time `json:"begin_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
	PIDs    []int64   `json:"pids" validate:"dive,min=1"`
}

type CreateContestResponse struct {
	ContestID int64 `json:"contest_id"`
}

type EditContestParam struct {
	ContestCommonParam `json:",inline"`

	Title   *string    `json:"title" validate:"omitempty,min=1,max=64"`
	Content *string    `json:"content" validate:"omitempty,min=1,max=65536"`
	Rule    *RuleID    `json:"rule"`
	Private *bool      `json:"private"`
	BeginAt *time.Time `json:"begin_at"`
	EndAt   *time.Time `json:"end_at"`
	PIDs    []int64    `json:"pids" validate:"omitempty,dive,min=1"`
}

// Update 转换为 ContestUpdate
func (p *EditContestParam) Update() *ContestUpdate {
	return &ContestUpdate{
		Title:   p.Title,
		Content: p.Content,
		Rule:    p.Rule,
		Private: p.Private,
		BeginAt: p.BeginAt,
		EndAt:   p.EndAt,
		PIDs:    p.PIDs,
	}
}

type GetContestParam struct {
	ContestCommonParam `json:",inline"`
}

type GetContestListParam struct {
	CommonParam `json:"-"`
	PageParam   `json:",inline"`

	Rule *RuleID `json:"rule" form:"rule"`
}

type GetContestListResponse struct {
	List     []*Contest `json:"list"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

type AttendContestParam struct {
	ContestCommonParam `json:",inline"`
}

type ConvertProblemParam struct {
	ContestCommonParam `json:",inline"`

	ProblemID int64  `json:"problem_id" form:"problem_id"`
	Letter    string `json:"letter" form:"letter"`
}

type ConvertProblemResponse struct {
	ProblemID int64  `json:"problem_id"`
	Letter    string `json:"letter"`
}

type GetStatusMapParam struct {
	CommonParam `json:"-"`

	UserID     int64   `json:"user_id" form:"user_id" validate:"required,min=1"`
	ContestIDs []int64 `json:"contest_ids" form:"contest_ids" validate:"max=100,dive,min=1"`
}
