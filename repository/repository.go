package repository

import (
	"context"
	"errors"
	"iter"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/to404hanga/online_judge_contest/model"
)

// ErrDuplicateKey 唯一索引冲突
var ErrDuplicateKey = errors.New("duplicate key")

// 查询不到文档时, 各方法返回 (nil, nil)

type ContestRepository interface {
	// NextID 分配比赛 id
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, contest *model.Contest) error
	Get(ctx context.Context, domainID string, tid int64) (*model.Contest, error)
	// Update 部分更新, 返回更新后的文档
	Update(ctx context.Context, domainID string, tid int64, update *model.ContestUpdate) (*model.Contest, error)
	// List 按 id 倒序分页
	List(ctx context.Context, domainID string, rule *model.RuleID, offset, limit int) ([]*model.Contest, error)
	IncAttend(ctx context.Context, domainID string, tid int64, delta int64) error
	SetAttend(ctx context.Context, domainID string, tid int64, attend int64) error
	// ListEndedAfter 返回 end_at 不早于 since 的比赛, 跨 domain
	ListEndedAfter(ctx context.Context, since time.Time) ([]*model.Contest, error)
	EnsureIndexes(ctx context.Context) error
}

type StatusRepository interface {
	// Attend 将 attend 从 0 置为 1, 已参加时返回 ErrDuplicateKey
	Attend(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error)
	Get(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error)
	// AppendJournal 追加流水并递增 rev, 返回追加后的文档
	AppendJournal(ctx context.Context, key model.StatusKey, entry model.JournalEntry) (*model.ContestStatus, error)
	// SetStats 覆盖流水与统计结果并递增 rev. expectRev 非空时仅在 rev 一致时写入
	SetStats(ctx context.Context, key model.StatusKey, journal []model.JournalEntry, stats model.StatusStats, expectRev *int64) (*model.ContestStatus, error)
	// SetBalloon 设置某题的气球状态, 没有该题的统计结果时返回 nil
	SetBalloon(ctx context.Context, key model.StatusKey, pid int64, delivered bool) (*model.ContestStatus, error)
	SetRanked(ctx context.Context, key model.StatusKey, ranked bool) (*model.ContestStatus, error)
	// ListByContest 惰性遍历比赛的所有状态, 每次遍历重新查询
	ListByContest(ctx context.Context, domainID string, tid int64) iter.Seq2[*model.ContestStatus, error]
	ListByUser(ctx context.Context, domainID string, uid int64, tids []int64) ([]*model.ContestStatus, error)
	Delete(ctx context.Context, key model.StatusKey) error
	CountAttended(ctx context.Context, domainID string, tid int64) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// RecordRepository 提交记录
type RecordRepository interface {
	// DetachContest 解除提交记录与比赛的关联
	DetachContest(ctx context.Context, rid primitive.ObjectID) error
}

// UserDirectory 用户信息查询, 用户不存在时返回 errs.UserNotFoundError
type UserDirectory interface {
	GetUser(ctx context.Context, uid int64) (*model.User, error)
}
