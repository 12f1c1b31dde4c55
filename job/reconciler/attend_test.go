package reconciler

import (
	"context"
	"testing"
	"time"

	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"

	"github.com/to404hanga/online_judge_contest/model"
	"github.com/to404hanga/online_judge_contest/repository"
)

func TestRunReconcile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	contests := repository.NewMemoryContestRepository()
	statuses := repository.NewMemoryStatusRepository()

	recent := &model.Contest{ID: 1, DomainID: "system", EndAt: now.Add(-time.Hour), Attend: 0}
	old := &model.Contest{ID: 2, DomainID: "system", EndAt: now.Add(-30 * 24 * time.Hour), Attend: 9}
	for _, c := range []*model.Contest{recent, old} {
		if err := contests.Insert(ctx, c); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	for uid := int64(1); uid <= 3; uid++ {
		statuses.Attend(ctx, model.StatusKey{DomainID: "system", ContestID: 1, UserID: uid})
	}

	r := NewAttendReconciler(contests, statuses, loggerv2.NewZapContextLogger(zap.NewNop()), 7*24*time.Hour)
	r.now = func() time.Time { return now }
	if err := r.RunReconcile(ctx); err != nil {
		t.Fatalf("RunReconcile() error = %v", err)
	}

	c, _ := contests.Get(ctx, "system", 1)
	if c.Attend != 3 {
		t.Fatalf("recent attend = %d, want 3", c.Attend)
	}
	c, _ = contests.Get(ctx, "system", 2)
	if c.Attend != 9 {
		t.Fatalf("old contest attend = %d, want untouched 9", c.Attend)
	}
}
