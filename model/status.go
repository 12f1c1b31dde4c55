package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry 评测结果流水, RID 为提交记录 id, 其中包含提交时间
type JournalEntry struct {
	RID    primitive.ObjectID `bson:"rid" json:"rid"`
	PID    int64              `bson:"pid" json:"pid"`
	Accept bool               `bson:"accept" json:"accept"`
	Score  int                `bson:"score" json:"score"`
}

// StatusDetail 单题统计结果, 以 PID 为键
type StatusDetail struct {
	RID     primitive.ObjectID `bson:"rid" json:"rid"`
	PID     int64              `bson:"pid" json:"pid"`
	Accept  bool               `bson:"accept" json:"accept"`
	Score   int                `bson:"score" json:"score"`
	NAccept int                `bson:"naccept,omitempty" json:"naccept,omitempty"` // 通过前的错误提交次数(ACM)
	Time    int64              `bson:"time,omitempty" json:"time,omitempty"`       // 含罚时的用时(ACM, 单位: 毫秒)
	Balloon bool               `bson:"balloon" json:"balloon"`
}

// StatusStats 赛制相关的统计字段
type StatusStats struct {
	Detail []StatusDetail `bson:"detail" json:"detail"`
	Score  int            `bson:"score" json:"score"`   // OI 总分
	Accept int            `bson:"accept" json:"accept"` // ACM 通过题数
	Time   int64          `bson:"time" json:"time"`     // ACM 总用时(单位: 毫秒)
}

// ContestStatus 选手在比赛中的状态文档, (domain_id, tid, uid) 唯一
type ContestStatus struct {
	DomainID string         `bson:"domain_id" json:"domain_id"`
	TID      int64          `bson:"tid" json:"tid"`
	UID      int64          `bson:"uid" json:"uid"`
	Attend   int            `bson:"attend" json:"attend"`
	Journal  []JournalEntry `bson:"journal" json:"journal"`
	Rev      int64          `bson:"rev" json:"rev"`
	Ranked   *bool          `bson:"ranked,omitempty" json:"ranked,omitempty"`

	StatusStats `bson:",inline" json:",inline"`
}

// IsAttended 是否已参加比赛
func (s *ContestStatus) IsAttended() bool {
	return s.Attend != 0
}

// IsRanked 是否参与排名, 未设置时默认参与
func (s *ContestStatus) IsRanked() bool {
	return s.Ranked == nil || *s.Ranked
}

// DetailOf 返回指定题目的统计结果
func (s *ContestStatus) DetailOf(pid int64) (StatusDetail, bool) {
	for _, d := range s.Detail {
		if d.PID == pid {
			return d, true
		}
	}
	return StatusDetail{}, false
}

// StatusKey 定位一个选手状态文档
type StatusKey struct {
	DomainID  string
	ContestID int64
	UserID    int64
}

type UpdateStatusParam struct {
	ContestCommonParam `json:",inline"`

	UserID    int64              `json:"user_id" validate:"required,min=1"`
	RID       primitive.ObjectID `json:"rid" validate:"required"`
	ProblemID int64              `json:"problem_id" validate:"required,min=1"`
	Accept    bool               `json:"accept"`
	Score     int                `json:"score" validate:"min=0"`
}

// Key 返回状态文档键
func (p *UpdateStatusParam) Key() StatusKey {
	return StatusKey{DomainID: p.DomainID, ContestID: p.ContestID, UserID: p.UserID}
}

// Entry 返回对应的流水记录
func (p *UpdateStatusParam) Entry() JournalEntry {
	return JournalEntry{RID: p.RID, PID: p.ProblemID, Accept: p.Accept, Score: p.Score}
}

type StatusUserParam struct {
	ContestCommonParam `json:",inline"`

	UserID int64 `json:"user_id" form:"user_id" validate:"required,min=1"`
}

// Key 返回状态文档键
func (p *StatusUserParam) Key() StatusKey {
	return StatusKey{DomainID: p.DomainID, ContestID: p.ContestID, UserID: p.UserID}
}

type SetBalloonParam struct {
	StatusUserParam `json:",inline"`

	ProblemID int64 `json:"problem_id" validate:"required,min=1"`
	Delivered *bool `json:"delivered" validate:"required"`
}

type SetRankedParam struct {
	StatusUserParam `json:",inline"`

	Ranked *bool `json:"ranked" validate:"required"`
}

type PendingBalloon struct {
	UserID    int64  `json:"user_id"`
	ProblemID int64  `json:"problem_id"`
	Letter    string `json:"letter"`
}

type GetPendingBalloonListParam struct {
	ContestCommonParam `json:",inline"`
}
