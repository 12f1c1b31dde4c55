package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/to404hanga/online_judge_contest/model"
)

func TestMemoryStatusAttendOnce(t *testing.T) {
	repo := NewMemoryStatusRepository()
	ctx := context.Background()

	const n = 32
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Attend(ctx, testKey)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrDuplicateKey):
				dup.Add(1)
			default:
				t.Errorf("Attend() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 1 || dup.Load() != n-1 {
		t.Fatalf("ok = %d, dup = %d", ok.Load(), dup.Load())
	}
	count, _ := repo.CountAttended(ctx, testKey.DomainID, testKey.ContestID)
	if count != 1 {
		t.Fatalf("CountAttended() = %d, want 1", count)
	}
}

func TestMemoryStatusSetStatsRevision(t *testing.T) {
	repo := NewMemoryStatusRepository()
	ctx := context.Background()
	if _, err := repo.Attend(ctx, testKey); err != nil {
		t.Fatal(err)
	}
	status, _ := repo.AppendJournal(ctx, testKey, model.JournalEntry{PID: 1})
	stale := status.Rev - 1

	got, err := repo.SetStats(ctx, testKey, status.Journal, model.StatusStats{Score: 10}, &stale)
	if err != nil || got != nil {
		t.Fatalf("SetStats(stale) = %+v, %v", got, err)
	}
	got, err = repo.SetStats(ctx, testKey, status.Journal, model.StatusStats{Score: 10}, &status.Rev)
	if err != nil || got == nil || got.Score != 10 || got.Rev != status.Rev+1 {
		t.Fatalf("SetStats() = %+v, %v", got, err)
	}
}

func TestMemoryStatusSetBalloon(t *testing.T) {
	repo := NewMemoryStatusRepository()
	ctx := context.Background()
	repo.Attend(ctx, testKey)

	got, err := repo.SetBalloon(ctx, testKey, 10, true)
	if err != nil || got != nil {
		t.Fatalf("SetBalloon(no detail) = %+v, %v", got, err)
	}

	repo.SetStats(ctx, testKey, nil, model.StatusStats{Detail: []model.StatusDetail{{PID: 10, Accept: true}}}, nil)
	got, err = repo.SetBalloon(ctx, testKey, 10, true)
	if err != nil || got == nil {
		t.Fatalf("SetBalloon() = %+v, %v", got, err)
	}
	if d, _ := got.DetailOf(10); !d.Balloon {
		t.Fatalf("balloon not set: %+v", got.Detail)
	}
}

func TestMemoryStatusListRestartable(t *testing.T) {
	repo := NewMemoryStatusRepository()
	ctx := context.Background()
	for uid := int64(1); uid <= 3; uid++ {
		repo.Attend(ctx, model.StatusKey{DomainID: "system", ContestID: 1, UserID: uid})
	}
	repo.Attend(ctx, model.StatusKey{DomainID: "system", ContestID: 2, UserID: 9})

	seq := repo.ListByContest(ctx, "system", 1)
	for round := 0; round < 2; round++ {
		var uids []int64
		for s, err := range seq {
			if err != nil {
				t.Fatal(err)
			}
			uids = append(uids, s.UID)
		}
		if len(uids) != 3 || uids[0] != 1 || uids[2] != 3 {
			t.Fatalf("round %d uids = %v", round, uids)
		}
	}

	repo.Delete(ctx, model.StatusKey{DomainID: "system", ContestID: 1, UserID: 2})
	n := 0
	for range seq {
		n++
	}
	if n != 2 {
		t.Fatalf("after delete n = %d, want 2", n)
	}
}

func TestMemoryContestList(t *testing.T) {
	repo := NewMemoryContestRepository()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		id, _ := repo.NextID(ctx)
		rule := model.RuleACM
		if id%2 == 0 {
			rule = model.RuleOI
		}
		if err := repo.Insert(ctx, &model.Contest{ID: id, DomainID: "system", Rule: rule}); err != nil {
			t.Fatal(err)
		}
	}

	list, _ := repo.List(ctx, "system", nil, 1, 2)
	if len(list) != 2 || list[0].ID != 4 || list[1].ID != 3 {
		t.Fatalf("List() = %v", list)
	}
	oi := model.RuleOI
	list, _ = repo.List(ctx, "system", &oi, 0, 10)
	if len(list) != 2 || list[0].ID != 4 || list[1].ID != 2 {
		t.Fatalf("List(OI) = %v", list)
	}
	if err := repo.Insert(ctx, &model.Contest{ID: 1, DomainID: "system"}); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Insert(dup) error = %v", err)
	}
}
