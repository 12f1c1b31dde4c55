package repository

import (
	"context"
	"iter"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/to404hanga/online_judge_contest/model"
)

// MemoryContestRepository 内存实现, 用于单机部署与测试
type MemoryContestRepository struct {
	mu       sync.Mutex
	counter  int64
	contests map[contestKey]*model.Contest
}

type contestKey struct {
	domainID string
	tid      int64
}

var _ ContestRepository = (*MemoryContestRepository)(nil)

func NewMemoryContestRepository() *MemoryContestRepository {
	return &MemoryContestRepository{
		contests: make(map[contestKey]*model.Contest),
	}
}

func cloneContest(c *model.Contest) *model.Contest {
	cp := *c
	cp.PIDs = slices.Clone(c.PIDs)
	return &cp
}

func (r *MemoryContestRepository) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *MemoryContestRepository) Insert(ctx context.Context, contest *model.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := contestKey{contest.DomainID, contest.ID}
	if _, ok := r.contests[k]; ok {
		return ErrDuplicateKey
	}
	r.contests[k] = cloneContest(contest)
	return nil
}

func (r *MemoryContestRepository) Get(ctx context.Context, domainID string, tid int64) (*model.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[contestKey{domainID, tid}]
	if !ok {
		return nil, nil
	}
	return cloneContest(c), nil
}

func (r *MemoryContestRepository) Update(ctx context.Context, domainID string, tid int64, u *model.ContestUpdate) (*model.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[contestKey{domainID, tid}]
	if !ok {
		return nil, nil
	}
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Content != nil {
		c.Content = *u.Content
	}
	if u.Rule != nil {
		c.Rule = *u.Rule
	}
	if u.Private != nil {
		c.Private = *u.Private
	}
	if u.BeginAt != nil {
		c.BeginAt = *u.BeginAt
	}
	if u.EndAt != nil {
		c.EndAt = *u.EndAt
	}
	if u.PIDs != nil {
		c.PIDs = slices.Clone(u.PIDs)
	}
	return cloneContest(c), nil
}

func (r *MemoryContestRepository) List(ctx context.Context, domainID string, rule *model.RuleID, offset, limit int) ([]*model.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*model.Contest, 0)
	for _, c := range r.contests {
		if c.DomainID != domainID || (rule != nil && c.Rule != *rule) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	results := make([]*model.Contest, 0, limit)
	for i := offset; i < len(matched) && len(results) < limit; i++ {
		results = append(results, cloneContest(matched[i]))
	}
	return results, nil
}

func (r *MemoryContestRepository) IncAttend(ctx context.Context, domainID string, tid int64, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contests[contestKey{domainID, tid}]; ok {
		c.Attend += delta
	}
	return nil
}

func (r *MemoryContestRepository) SetAttend(ctx context.Context, domainID string, tid int64, attend int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contests[contestKey{domainID, tid}]; ok {
		c.Attend = attend
	}
	return nil
}

func (r *MemoryContestRepository) ListEndedAfter(ctx context.Context, since time.Time) ([]*model.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*model.Contest
	for _, c := range r.contests {
		if !c.EndAt.Before(since) {
			results = append(results, cloneContest(c))
		}
	}
	return results, nil
}

func (r *MemoryContestRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

// MemoryStatusRepository 内存实现, 单个互斥锁保证单文档原子性
type MemoryStatusRepository struct {
	mu       sync.Mutex
	order    []model.StatusKey
	statuses map[model.StatusKey]*model.ContestStatus
}

var _ StatusRepository = (*MemoryStatusRepository)(nil)

func NewMemoryStatusRepository() *MemoryStatusRepository {
	return &MemoryStatusRepository{
		statuses: make(map[model.StatusKey]*model.ContestStatus),
	}
}

func cloneStatus(s *model.ContestStatus) *model.ContestStatus {
	cp := *s
	cp.Journal = slices.Clone(s.Journal)
	cp.Detail = slices.Clone(s.Detail)
	if s.Ranked != nil {
		ranked := *s.Ranked
		cp.Ranked = &ranked
	}
	return &cp
}

func (r *MemoryStatusRepository) Attend(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok {
		s = &model.ContestStatus{
			DomainID: key.DomainID,
			TID:      key.ContestID,
			UID:      key.UserID,
			Journal:  []model.JournalEntry{},
			StatusStats: model.StatusStats{
				Detail: []model.StatusDetail{},
			},
		}
		r.statuses[key] = s
		r.order = append(r.order, key)
	} else if s.Attend != 0 {
		return nil, ErrDuplicateKey
	}
	s.Attend = 1
	return cloneStatus(s), nil
}

func (r *MemoryStatusRepository) Get(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok {
		return nil, nil
	}
	return cloneStatus(s), nil
}

func (r *MemoryStatusRepository) AppendJournal(ctx context.Context, key model.StatusKey, entry model.JournalEntry) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok {
		return nil, nil
	}
	s.Journal = append(s.Journal, entry)
	s.Rev++
	return cloneStatus(s), nil
}

func (r *MemoryStatusRepository) SetStats(ctx context.Context, key model.StatusKey, journal []model.JournalEntry, stats model.StatusStats, expectRev *int64) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok || (expectRev != nil && s.Rev != *expectRev) {
		return nil, nil
	}
	s.Journal = slices.Clone(journal)
	s.Detail = slices.Clone(stats.Detail)
	s.Score = stats.Score
	s.Accept = stats.Accept
	s.Time = stats.Time
	s.Rev++
	return cloneStatus(s), nil
}

func (r *MemoryStatusRepository) SetBalloon(ctx context.Context, key model.StatusKey, pid int64, delivered bool) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok {
		return nil, nil
	}
	for i := range s.Detail {
		if s.Detail[i].PID == pid {
			s.Detail[i].Balloon = delivered
			s.Rev++
			return cloneStatus(s), nil
		}
	}
	return nil, nil
}

func (r *MemoryStatusRepository) SetRanked(ctx context.Context, key model.StatusKey, ranked bool) (*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.statuses[key]
	if !ok {
		return nil, nil
	}
	s.Ranked = &ranked
	s.Rev++
	return cloneStatus(s), nil
}

// snapshot 复制比赛下所有状态, 顺序为插入顺序
func (r *MemoryStatusRepository) snapshot(domainID string, tid int64) []*model.ContestStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*model.ContestStatus
	for _, k := range r.order {
		if k.DomainID != domainID || k.ContestID != tid {
			continue
		}
		if s, ok := r.statuses[k]; ok {
			results = append(results, cloneStatus(s))
		}
	}
	return results
}

func (r *MemoryStatusRepository) ListByContest(ctx context.Context, domainID string, tid int64) iter.Seq2[*model.ContestStatus, error] {
	return func(yield func(*model.ContestStatus, error) bool) {
		for _, s := range r.snapshot(domainID, tid) {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}

func (r *MemoryStatusRepository) ListByUser(ctx context.Context, domainID string, uid int64, tids []int64) ([]*model.ContestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*model.ContestStatus
	for _, tid := range tids {
		if s, ok := r.statuses[model.StatusKey{DomainID: domainID, ContestID: tid, UserID: uid}]; ok {
			results = append(results, cloneStatus(s))
		}
	}
	return results, nil
}

func (r *MemoryStatusRepository) Delete(ctx context.Context, key model.StatusKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.statuses[key]; !ok {
		return nil
	}
	delete(r.statuses, key)
	r.order = slices.DeleteFunc(r.order, func(k model.StatusKey) bool { return k == key })
	return nil
}

func (r *MemoryStatusRepository) CountAttended(ctx context.Context, domainID string, tid int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, s := range r.statuses {
		if k.DomainID == domainID && k.ContestID == tid && s.Attend == 1 {
			n++
		}
	}
	return n, nil
}

func (r *MemoryStatusRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

// MemoryRecordRepository 记录被解除关联的提交, 用于单机部署与测试
type MemoryRecordRepository struct {
	mu       sync.Mutex
	detached []primitive.ObjectID
}

var _ RecordRepository = (*MemoryRecordRepository)(nil)

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{}
}

func (r *MemoryRecordRepository) DetachContest(ctx context.Context, rid primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detached = append(r.detached, rid)
	return nil
}

// Detached 返回已解除关联的提交 id
func (r *MemoryRecordRepository) Detached() []primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.detached)
}
