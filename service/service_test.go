package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/event"
	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
	"github.com/to404hanga/online_judge_contest/rule"
)

const testDomain = "system"

type fixture struct {
	contests  *repository.MemoryContestRepository
	statuses  *repository.MemoryStatusRepository
	records   *repository.MemoryRecordRepository
	users     repository.StaticUserDirectory
	publisher *event.RecordingPublisher

	contest ContestService
	balloon BalloonService
	status  StatusService
	ranking *RankingServiceImpl
}

func newFixture(t *testing.T, retries int) *fixture {
	t.Helper()
	f := &fixture{
		contests:  repository.NewMemoryContestRepository(),
		statuses:  repository.NewMemoryStatusRepository(),
		records:   repository.NewMemoryRecordRepository(),
		users:     repository.StaticUserDirectory{},
		publisher: &event.RecordingPublisher{},
	}
	for uid := int64(1); uid <= 64; uid++ {
		f.users[uid] = &model.User{ID: uid, Uname: "user" + string(rune('a'+uid%26))}
	}
	log := loggerv2.NewZapContextLogger(zap.NewNop())
	f.contest = NewContestService(f.contests, f.statuses, log)
	f.balloon = NewBalloonService(f.contests, f.statuses, f.users, f.publisher, log)
	f.status = NewStatusService(f.contests, f.statuses, f.records, f.balloon, f.publisher, log, retries)
	f.ranking = NewRankingService(f.contests, f.statuses, f.users, rule.PrizeConfig{Gold: 1, Silver: 1, Bronze: 1}, log).(*RankingServiceImpl)
	return f
}

var beginAt = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func (f *fixture) createContest(t *testing.T, r model.RuleID) int64 {
	t.Helper()
	tid, err := f.contest.CreateContest(context.Background(), &model.CreateContestParam{
		CommonParam: model.CommonParam{Operator: 1, DomainID: testDomain},
		Title:       "round",
		Content:     "welcome",
		Rule:        r,
		BeginAt:     beginAt,
		EndAt:       beginAt.Add(5 * time.Hour),
		PIDs:        []int64{1001, 1002, 1003},
	})
	if err != nil {
		t.Fatalf("CreateContest() error = %v", err)
	}
	return tid
}

func (f *fixture) attend(t *testing.T, tid, uid int64) {
	t.Helper()
	if _, err := f.contest.AttendContest(context.Background(), testDomain, tid, uid); err != nil {
		t.Fatalf("AttendContest(%d) error = %v", uid, err)
	}
}

func rid(offset time.Duration) primitive.ObjectID {
	return primitive.NewObjectIDFromTimestamp(beginAt.Add(offset))
}

func judge(tid, uid, pid int64, id primitive.ObjectID, accept bool, score int) *model.UpdateStatusParam {
	return &model.UpdateStatusParam{
		ContestCommonParam: model.ContestCommonParam{
			CommonParam: model.CommonParam{DomainID: testDomain},
			ContestID:   tid,
		},
		UserID:    uid,
		RID:       id,
		ProblemID: pid,
		Accept:    accept,
		Score:     score,
	}
}

func TestCreateContestValidation(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.contest.CreateContest(context.Background(), &model.CreateContestParam{
		CommonParam: model.CommonParam{DomainID: testDomain},
		Title:       "round",
		Content:     "welcome",
		Rule:        model.RuleACM,
		BeginAt:     beginAt,
		EndAt:       beginAt,
		PIDs:        []int64{1, 1},
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("CreateContest() error = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("fields = %v", ve.Fields)
	}
}

func TestEditContest(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleOI)
	ctx := context.Background()

	title := "final"
	c, err := f.contest.EditContest(ctx, &model.EditContestParam{
		ContestCommonParam: model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: tid},
		Title:              &title,
	})
	if err != nil || c.Title != "final" || c.Content != "welcome" {
		t.Fatalf("EditContest() = %+v, %v", c, err)
	}

	endAt := beginAt.Add(-time.Hour)
	_, err = f.contest.EditContest(ctx, &model.EditContestParam{
		ContestCommonParam: model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: tid},
		EndAt:              &endAt,
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("EditContest() error = %v, want ValidationError", err)
	}

	_, err = f.contest.EditContest(ctx, &model.EditContestParam{
		ContestCommonParam: model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: 404},
		Title:              &title,
	})
	var nf *errs.ContestNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("EditContest() error = %v, want ContestNotFoundError", err)
	}
}

func TestAttendContestConcurrent(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)

	var (
		wg       sync.WaitGroup
		ok       atomic.Int32
		attended atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.contest.AttendContest(context.Background(), testDomain, tid, 7)
			var ae *errs.ContestAlreadyAttendedError
			switch {
			case err == nil:
				ok.Add(1)
			case errors.As(err, &ae):
				attended.Add(1)
			default:
				t.Errorf("AttendContest() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 1 || attended.Load() != 15 {
		t.Fatalf("ok = %d, already attended = %d", ok.Load(), attended.Load())
	}
	c, _ := f.contest.GetContest(context.Background(), testDomain, tid)
	if c.Attend != 1 {
		t.Fatalf("attend = %d, want 1", c.Attend)
	}
}

func TestAttendContestNotFound(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.contest.AttendContest(context.Background(), testDomain, 99, 1)
	var nf *errs.ContestNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("AttendContest() error = %v, want ContestNotFoundError", err)
	}
}

func TestGetStatusMap(t *testing.T) {
	f := newFixture(t, 0)
	t1 := f.createContest(t, model.RuleACM)
	t2 := f.createContest(t, model.RuleOI)
	f.attend(t, t1, 3)

	m, err := f.contest.GetStatusMap(context.Background(), testDomain, 3, []int64{t1, t2})
	if err != nil {
		t.Fatalf("GetStatusMap() error = %v", err)
	}
	if len(m) != 1 || m[t1] == nil {
		t.Fatalf("GetStatusMap() = %v", m)
	}
}

func TestConvertProblem(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	common := model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: tid}

	resp, err := f.contest.ConvertProblem(context.Background(), &model.ConvertProblemParam{ContestCommonParam: common, Letter: "B"})
	if err != nil || resp.ProblemID != 1002 {
		t.Fatalf("ConvertProblem(B) = %+v, %v", resp, err)
	}
	resp, err = f.contest.ConvertProblem(context.Background(), &model.ConvertProblemParam{ContestCommonParam: common, ProblemID: 1003})
	if err != nil || resp.Letter != "C" {
		t.Fatalf("ConvertProblem(1003) = %+v, %v", resp, err)
	}
	_, err = f.contest.ConvertProblem(context.Background(), &model.ConvertProblemParam{ContestCommonParam: common, Letter: "D"})
	var pe *errs.ContestProblemNotFoundError
	if !errors.As(err, &pe) {
		t.Fatalf("ConvertProblem(D) error = %v", err)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 1)
	ctx := context.Background()

	wrong := rid(10 * time.Minute)
	ac := rid(30 * time.Minute)
	for _, p := range []*model.UpdateStatusParam{
		judge(tid, 1, 1001, wrong, false, 0),
		judge(tid, 1, 1001, ac, true, 100),
	} {
		if _, err := f.status.UpdateStatus(ctx, p); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
	}
	first, _ := f.status.GetStatus(ctx, model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 1})

	// 重复投递同一评测结果
	again, err := f.status.UpdateStatus(ctx, judge(tid, 1, 1001, ac, true, 100))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if again.Accept != first.Accept || again.Time != first.Time || len(again.Journal) != 2 {
		t.Fatalf("redelivery changed stats: %+v vs %+v", again.StatusStats, first.StatusStats)
	}
	wantTime := (30*time.Minute + rule.PenaltyTime).Milliseconds()
	if again.Accept != 1 || again.Time != wantTime {
		t.Fatalf("accept = %d time = %d, want 1 %d", again.Accept, again.Time, wantTime)
	}
}

// unattendedStatusRepository 模拟仅有流水而未参加比赛的状态文档
type unattendedStatusRepository struct {
	*repository.MemoryStatusRepository
}

func (r unattendedStatusRepository) AppendJournal(ctx context.Context, key model.StatusKey, entry model.JournalEntry) (*model.ContestStatus, error) {
	s, err := r.MemoryStatusRepository.AppendJournal(ctx, key, entry)
	if s != nil {
		s.Attend = 0
	}
	return s, err
}

func TestUpdateStatusNotAttended(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	ctx := context.Background()

	status, err := f.status.UpdateStatus(ctx, judge(tid, 2, 1001, rid(time.Minute), true, 100))
	if err != nil || status != nil {
		t.Fatalf("UpdateStatus() without status = %v, %v", status, err)
	}

	f.attend(t, tid, 2)
	svc := NewStatusService(f.contests, unattendedStatusRepository{f.statuses}, f.records, f.balloon, f.publisher, loggerv2.NewZapContextLogger(zap.NewNop()), 0)
	_, err = svc.UpdateStatus(ctx, judge(tid, 2, 1001, rid(time.Minute), true, 100))
	var na *errs.ContestNotAttendedError
	if !errors.As(err, &na) {
		t.Fatalf("UpdateStatus() error = %v, want ContestNotAttendedError", err)
	}

	s, _ := f.status.GetStatus(ctx, model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 2})
	if len(s.Journal) != 1 || len(s.Detail) != 0 {
		t.Fatalf("journal = %d detail = %d", len(s.Journal), len(s.Detail))
	}
	if n := len(f.publisher.Events()); n != 0 {
		t.Fatalf("events = %d", n)
	}
}

func TestUpdateStatusUnknownProblem(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleOI)
	f.attend(t, tid, 1)
	_, err := f.status.UpdateStatus(context.Background(), judge(tid, 1, 42, rid(time.Minute), true, 100))
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("UpdateStatus() error = %v, want ValidationError", err)
	}
}

func TestUpdateStatusEvents(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 5)
	ctx := context.Background()

	f.status.UpdateStatus(ctx, judge(tid, 5, 1002, rid(time.Minute), false, 0))
	if n := len(f.publisher.ByTopic(event.BalloonChangeTopic)); n != 0 {
		t.Fatalf("balloon events after rejection = %d", n)
	}
	f.status.UpdateStatus(ctx, judge(tid, 5, 1002, rid(2*time.Minute), true, 100))
	f.status.UpdateStatus(ctx, judge(tid, 5, 1002, rid(3*time.Minute), true, 100))

	if n := len(f.publisher.ByTopic(event.RankChangedTopic(tid))); n != 3 {
		t.Fatalf("rank changed events = %d, want 3", n)
	}
	balloons := f.publisher.ByTopic(event.BalloonChangeTopic)
	if len(balloons) != 1 {
		t.Fatalf("balloon events = %d, want 1", len(balloons))
	}
	msg := balloons[0].Payload.(*event.BalloonChangeMessage)
	if msg.UserID != 5 || msg.ProblemLetter != "B" || msg.Delivered {
		t.Fatalf("balloon message = %+v", msg)
	}
}

func TestBalloonSurvivesRecompute(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 1)
	ctx := context.Background()
	key := model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 1}

	f.status.UpdateStatus(ctx, judge(tid, 1, 1001, rid(time.Minute), true, 100))
	pending, _ := f.balloon.GetPendingBalloonList(ctx, testDomain, tid)
	if len(pending) != 1 || pending[0].Letter != "A" {
		t.Fatalf("pending = %+v", pending)
	}

	if _, err := f.balloon.SetBalloon(ctx, key, 1001, true); err != nil {
		t.Fatalf("SetBalloon() error = %v", err)
	}
	f.status.UpdateStatus(ctx, judge(tid, 1, 1002, rid(2*time.Minute), false, 0))

	s, _ := f.status.GetStatus(ctx, key)
	if d, _ := s.DetailOf(1001); !d.Balloon {
		t.Fatalf("balloon lost after recompute: %+v", s.Detail)
	}
	pending, _ = f.balloon.GetPendingBalloonList(ctx, testDomain, tid)
	if len(pending) != 0 {
		t.Fatalf("pending = %+v", pending)
	}
}

func TestProblemLetterFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := loggerv2.NewZapContextLogger(zap.New(core))
	contest := &model.Contest{ID: 3, PIDs: []int64{1001, 1002}}

	if got := problemLetter(context.Background(), log, contest, 1002); got != "B" {
		t.Fatalf("problemLetter(1002) = %q, want B", got)
	}
	if logs.Len() != 0 {
		t.Fatalf("warn logs = %d, want 0", logs.Len())
	}
	// 题目已从比赛中移除
	if got := problemLetter(context.Background(), log, contest, 1009); got != "1009" {
		t.Fatalf("problemLetter(1009) = %q, want 1009", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("warn logs = %d, want 1", logs.Len())
	}
}

func TestSetBalloonNoDetail(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 1)
	key := model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 1}

	s, err := f.balloon.SetBalloon(context.Background(), key, 1003, true)
	if err != nil || s != nil {
		t.Fatalf("SetBalloon() = %v, %v", s, err)
	}
	if n := len(f.publisher.Events()); n != 0 {
		t.Fatalf("events = %d", n)
	}
}

// conflictStatusRepository 前 times 次带 rev 的 SetStats 前各模拟一次并发写入
type conflictStatusRepository struct {
	*repository.MemoryStatusRepository
	times     int32
	conflicts atomic.Int32
	calls     atomic.Int32
	forced    atomic.Int32
}

func (r *conflictStatusRepository) SetStats(ctx context.Context, key model.StatusKey, journal []model.JournalEntry, stats model.StatusStats, expectRev *int64) (*model.ContestStatus, error) {
	r.calls.Add(1)
	if expectRev == nil {
		r.forced.Add(1)
	} else if n := r.conflicts.Add(1); n <= r.times {
		r.MemoryStatusRepository.AppendJournal(ctx, key, model.JournalEntry{RID: rid(time.Duration(3+n) * time.Minute), PID: 1003, Accept: true})
	}
	return r.MemoryStatusRepository.SetStats(ctx, key, journal, stats, expectRev)
}

func TestUpdateStatusRevisionRetry(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 1)

	statuses := &conflictStatusRepository{MemoryStatusRepository: f.statuses, times: 1}
	svc := NewStatusService(f.contests, statuses, f.records, f.balloon, f.publisher, loggerv2.NewZapContextLogger(zap.NewNop()), 2)

	s, err := svc.UpdateStatus(context.Background(), judge(tid, 1, 1001, rid(time.Minute), true, 100))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if statuses.calls.Load() != 2 || statuses.forced.Load() != 0 {
		t.Fatalf("SetStats calls = %d forced = %d, want 2 0", statuses.calls.Load(), statuses.forced.Load())
	}
	if s.Accept != 2 || len(s.Journal) != 2 {
		t.Fatalf("accept = %d journal = %d, want 2 2", s.Accept, len(s.Journal))
	}
}

func TestUpdateStatusRevisionRetryExhausted(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	f.attend(t, tid, 1)

	statuses := &conflictStatusRepository{MemoryStatusRepository: f.statuses, times: 100}
	svc := NewStatusService(f.contests, statuses, f.records, f.balloon, f.publisher, loggerv2.NewZapContextLogger(zap.NewNop()), 1)

	s, err := svc.UpdateStatus(context.Background(), judge(tid, 1, 1001, rid(time.Minute), true, 100))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	// 一次带 rev 的尝试失败后直接覆盖写入
	if statuses.calls.Load() != 2 || statuses.forced.Load() != 1 {
		t.Fatalf("SetStats calls = %d forced = %d, want 2 1", statuses.calls.Load(), statuses.forced.Load())
	}
	if s == nil || s.Accept != 2 || len(s.Journal) != 2 {
		t.Fatalf("status = %+v", s)
	}
}

func TestUpdateStatusRejudgeReplacesOutcome(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleOI)
	f.attend(t, tid, 1)
	ctx := context.Background()

	x := rid(20 * time.Minute)
	if _, err := f.status.UpdateStatus(ctx, judge(tid, 1, 1001, x, true, 100)); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	// 重测后同一 rid 的结果变化
	s, err := f.status.UpdateStatus(ctx, judge(tid, 1, 1001, x, false, 30))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if len(s.Journal) != 1 || s.Journal[0].Accept || s.Journal[0].Score != 30 {
		t.Fatalf("journal = %+v", s.Journal)
	}
	if s.Score != 30 {
		t.Fatalf("score = %d, want 30", s.Score)
	}
	d, ok := s.DetailOf(1001)
	if !ok || d.Accept || d.Score != 30 {
		t.Fatalf("detail = %+v, %v", d, ok)
	}

	stored, _ := f.status.GetStatus(ctx, model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 1})
	if len(stored.Journal) != 1 || stored.Score != 30 {
		t.Fatalf("stored journal = %d score = %d", len(stored.Journal), stored.Score)
	}
}

func TestRemoveStatus(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleOI)
	f.attend(t, tid, 1)
	ctx := context.Background()
	key := model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 1}

	r1, r2 := rid(time.Minute), rid(2*time.Minute)
	f.status.UpdateStatus(ctx, judge(tid, 1, 1001, r1, false, 40))
	f.status.UpdateStatus(ctx, judge(tid, 1, 1002, r2, true, 100))
	f.publisher.Reset()

	if err := f.status.RemoveStatus(ctx, key); err != nil {
		t.Fatalf("RemoveStatus() error = %v", err)
	}
	detached := f.records.Detached()
	if len(detached) != 2 {
		t.Fatalf("detached = %v", detached)
	}
	if s, _ := f.status.GetStatus(ctx, key); s != nil {
		t.Fatalf("status still exists: %+v", s)
	}
	if n := len(f.publisher.ByTopic(event.RankChangedTopic(tid))); n != 1 {
		t.Fatalf("rank changed events = %d", n)
	}

	var nf *errs.UserNotFoundError
	if err := f.status.RemoveStatus(ctx, key); !errors.As(err, &nf) {
		t.Fatalf("RemoveStatus() again error = %v", err)
	}
}

func TestRankingWithUnranked(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleACM)
	ctx := context.Background()
	for uid := int64(1); uid <= 3; uid++ {
		f.attend(t, tid, uid)
	}

	// 1: 2 题, 2: 2 题但用时更长且不参与排名, 3: 1 题
	f.status.UpdateStatus(ctx, judge(tid, 1, 1001, rid(10*time.Minute), true, 100))
	f.status.UpdateStatus(ctx, judge(tid, 1, 1002, rid(20*time.Minute), true, 100))
	f.status.UpdateStatus(ctx, judge(tid, 2, 1001, rid(30*time.Minute), true, 100))
	f.status.UpdateStatus(ctx, judge(tid, 2, 1002, rid(40*time.Minute), true, 100))
	f.status.UpdateStatus(ctx, judge(tid, 3, 1003, rid(5*time.Minute), true, 100))
	if _, err := f.status.SetRanked(ctx, model.StatusKey{DomainID: testDomain, ContestID: tid, UserID: 2}, false); err != nil {
		t.Fatalf("SetRanked() error = %v", err)
	}

	f.ranking.now = func() time.Time { return beginAt.Add(time.Hour) }
	resp, err := f.ranking.GetRankingList(ctx, &model.GetRankingListParam{
		ContestCommonParam: model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: tid},
		PageParam:          model.PageParam{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("GetRankingList() error = %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("total = %d", resp.Total)
	}
	want := []struct {
		uid   int64
		rank  string
		prize model.Prize
	}{
		{1, "1", model.PrizeGold},
		{2, "*", model.PrizeSilver},
		{3, "2", model.PrizeSilver},
	}
	for i, w := range want {
		row := resp.List[i]
		if row.UserID != w.uid || row.Rank != w.rank || row.Prize != w.prize {
			t.Fatalf("row %d = %+v, want %+v", i, row, w)
		}
	}
	if resp.List[0].Uname == "" || resp.List[0].Problems[1].Letter != "B" {
		t.Fatalf("row 0 = %+v", resp.List[0])
	}
}

func TestRankingHidden(t *testing.T) {
	f := newFixture(t, 0)
	tid := f.createContest(t, model.RuleOI)
	param := &model.GetRankingListParam{
		ContestCommonParam: model.ContestCommonParam{CommonParam: model.CommonParam{DomainID: testDomain}, ContestID: tid},
		PageParam:          model.PageParam{Page: 1, PageSize: 10},
	}

	f.ranking.now = func() time.Time { return beginAt.Add(time.Hour) }
	_, err := f.ranking.GetRankingList(context.Background(), param)
	var he *errs.ContestScoreboardHiddenError
	if !errors.As(err, &he) {
		t.Fatalf("GetRankingList() error = %v, want ContestScoreboardHiddenError", err)
	}

	f.ranking.now = func() time.Time { return beginAt.Add(5 * time.Hour) }
	if _, err = f.ranking.GetRankingList(context.Background(), param); err != nil {
		t.Fatalf("GetRankingList() after end error = %v", err)
	}
}
