package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/to404hanga/online_judge_contest/model"
)

var testKey = model.StatusKey{DomainID: "system", ContestID: 7, UserID: 42}

func statusDoc(attend int, rev int64) bson.D {
	return bson.D{
		{Key: "domain_id", Value: testKey.DomainID},
		{Key: "tid", Value: testKey.ContestID},
		{Key: "uid", Value: testKey.UserID},
		{Key: "attend", Value: attend},
		{Key: "journal", Value: bson.A{}},
		{Key: "detail", Value: bson.A{
			bson.D{{Key: "pid", Value: int64(10)}, {Key: "accept", Value: true}, {Key: "balloon", Value: true}},
		}},
		{Key: "accept", Value: 1},
		{Key: "rev", Value: rev},
	}
}

func TestMongoStatusAttend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first attend", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: statusDoc(1, 0)}))

		status, err := repo.Attend(context.Background(), testKey)
		if err != nil {
			mt.Fatalf("Attend() error = %v", err)
		}
		if status == nil || !status.IsAttended() || status.UID != testKey.UserID {
			mt.Fatalf("Attend() = %+v", status)
		}
	})

	mt.Run("duplicate attend", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "E11000 duplicate key error",
			Name:    "DuplicateKey",
		}))

		_, err := repo.Attend(context.Background(), testKey)
		if !errors.Is(err, ErrDuplicateKey) {
			mt.Fatalf("Attend() error = %v, want ErrDuplicateKey", err)
		}
	})
}

func TestMongoStatusAppendJournal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("appended", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: statusDoc(1, 3)}))

		status, err := repo.AppendJournal(context.Background(), testKey, model.JournalEntry{PID: 10})
		if err != nil {
			mt.Fatalf("AppendJournal() error = %v", err)
		}
		if status.Rev != 3 {
			mt.Fatalf("rev = %d, want 3", status.Rev)
		}
		d, ok := status.DetailOf(10)
		if !ok || !d.Balloon {
			mt.Fatalf("detail = %+v", status.Detail)
		}
	})

	mt.Run("missing status", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		status, err := repo.AppendJournal(context.Background(), testKey, model.JournalEntry{PID: 10})
		if err != nil || status != nil {
			mt.Fatalf("AppendJournal() = %+v, %v, want nil, nil", status, err)
		}
	})
}

func TestMongoStatusSetStats(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	stats := model.StatusStats{
		Detail: []model.StatusDetail{{PID: 10, Accept: true}},
		Accept: 1,
	}

	mt.Run("matching rev", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: statusDoc(1, 5)}))

		rev := int64(4)
		status, err := repo.SetStats(context.Background(), testKey, nil, stats, &rev)
		if err != nil {
			mt.Fatalf("SetStats() error = %v", err)
		}
		if status == nil || status.Rev != 5 {
			mt.Fatalf("SetStats() = %+v", status)
		}

		cmd := mt.GetStartedEvent().Command
		if got, ok := cmd.Lookup("query", "rev").Int64OK(); !ok || got != 4 {
			mt.Fatalf("query.rev = %v, want 4", cmd.Lookup("query", "rev"))
		}
		if got, ok := cmd.Lookup("query", "uid").Int64OK(); !ok || got != testKey.UserID {
			mt.Fatalf("query.uid = %v", cmd.Lookup("query", "uid"))
		}
		if _, err := cmd.LookupErr("update", "$set", "journal"); err != nil {
			mt.Fatalf("update.$set.journal missing: %v", err)
		}
		if got, ok := cmd.Lookup("update", "$inc", "rev").Int64OK(); !ok || got != 1 {
			mt.Fatalf("update.$inc.rev = %v", cmd.Lookup("update", "$inc", "rev"))
		}
	})

	mt.Run("stale rev", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		rev := int64(2)
		status, err := repo.SetStats(context.Background(), testKey, nil, stats, &rev)
		if err != nil || status != nil {
			mt.Fatalf("SetStats() = %+v, %v, want nil, nil", status, err)
		}
	})

	mt.Run("unconditional", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: statusDoc(1, 9)}))

		if _, err := repo.SetStats(context.Background(), testKey, nil, stats, nil); err != nil {
			mt.Fatalf("SetStats() error = %v", err)
		}
		cmd := mt.GetStartedEvent().Command
		if _, err := cmd.LookupErr("query", "rev"); err == nil {
			mt.Fatalf("query = %v, want no rev filter", cmd.Lookup("query"))
		}
	})
}

func TestMongoStatusSetBalloon(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("delivered", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: statusDoc(1, 2)}))

		status, err := repo.SetBalloon(context.Background(), testKey, 10, true)
		if err != nil {
			mt.Fatalf("SetBalloon() error = %v", err)
		}
		if d, ok := status.DetailOf(10); !ok || !d.Balloon {
			mt.Fatalf("detail = %+v", status.Detail)
		}

		cmd := mt.GetStartedEvent().Command
		if got, ok := cmd.Lookup("query", "detail.pid").Int64OK(); !ok || got != 10 {
			mt.Fatalf("query.detail.pid = %v, want 10", cmd.Lookup("query", "detail.pid"))
		}
		if got, ok := cmd.Lookup("update", "$set", "detail.$.balloon").BooleanOK(); !ok || !got {
			mt.Fatalf("update.$set = %v", cmd.Lookup("update", "$set"))
		}
	})

	mt.Run("no detail", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		status, err := repo.SetBalloon(context.Background(), testKey, 11, false)
		if err != nil || status != nil {
			mt.Fatalf("SetBalloon() = %+v, %v, want nil, nil", status, err)
		}
		cmd := mt.GetStartedEvent().Command
		if got, ok := cmd.Lookup("update", "$set", "detail.$.balloon").BooleanOK(); !ok || got {
			mt.Fatalf("update.$set = %v", cmd.Lookup("update", "$set"))
		}
	})
}

func TestMongoStatusListByContest(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("iterate", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		first := statusDoc(1, 1)
		second := statusDoc(1, 2)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.contest.status", mtest.FirstBatch, first, second))

		var revs []int64
		for status, err := range repo.ListByContest(context.Background(), testKey.DomainID, testKey.ContestID) {
			if err != nil {
				mt.Fatalf("ListByContest() error = %v", err)
			}
			revs = append(revs, status.Rev)
		}
		if len(revs) != 2 || revs[0] != 1 || revs[1] != 2 {
			mt.Fatalf("revs = %v", revs)
		}
	})

	mt.Run("find error", func(mt *mtest.T) {
		repo := NewMongoStatusRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query", Name: "BadValue"}))

		n := 0
		for _, err := range repo.ListByContest(context.Background(), testKey.DomainID, testKey.ContestID) {
			n++
			if err == nil {
				mt.Fatalf("expected error")
			}
		}
		if n != 1 {
			mt.Fatalf("yielded %d times, want 1", n)
		}
	})
}

func TestMongoContestNextID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increment", func(mt *mtest.T) {
		repo := NewMongoContestRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: contestCounterID},
			{Key: "value", Value: int64(5)},
		}}))

		id, err := repo.NextID(context.Background())
		if err != nil || id != 5 {
			mt.Fatalf("NextID() = %d, %v", id, err)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewMongoContestRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.contest", mtest.FirstBatch))

		contest, err := repo.Get(context.Background(), "system", 1)
		if err != nil || contest != nil {
			mt.Fatalf("Get() = %+v, %v, want nil, nil", contest, err)
		}
	})
}
