package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/to404hanga/online_judge_contest/model"
)

const statusCollection = "contest.status"

type MongoStatusRepository struct {
	statuses *mongo.Collection
}

var _ StatusRepository = (*MongoStatusRepository)(nil)

func NewMongoStatusRepository(db *mongo.Database) *MongoStatusRepository {
	return &MongoStatusRepository{
		statuses: db.Collection(statusCollection),
	}
}

func keyFilter(key model.StatusKey) bson.M {
	return bson.M{"domain_id": key.DomainID, "tid": key.ContestID, "uid": key.UserID}
}

// findOneAndUpdate 执行原子更新并返回更新后的文档
func (r *MongoStatusRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, upsert bool) (*model.ContestStatus, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(upsert).
		SetReturnDocument(options.After)

	var status model.ContestStatus
	err := r.statuses.FindOneAndUpdate(ctx, filter, update, opts).Decode(&status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *MongoStatusRepository) Attend(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error) {
	filter := keyFilter(key)
	filter["attend"] = bson.M{"$eq": 0}
	return r.findOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{"attend": 1},
		"$setOnInsert": bson.M{
			"journal": bson.A{},
			"detail":  bson.A{},
			"score":   0,
			"accept":  0,
			"time":    int64(0),
			"rev":     int64(0),
		},
	}, true)
}

func (r *MongoStatusRepository) Get(ctx context.Context, key model.StatusKey) (*model.ContestStatus, error) {
	var status model.ContestStatus
	err := r.statuses.FindOne(ctx, keyFilter(key)).Decode(&status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *MongoStatusRepository) AppendJournal(ctx context.Context, key model.StatusKey, entry model.JournalEntry) (*model.ContestStatus, error) {
	return r.findOneAndUpdate(ctx, keyFilter(key), bson.M{
		"$push": bson.M{"journal": entry},
		"$inc":  bson.M{"rev": int64(1)},
	}, false)
}

func (r *MongoStatusRepository) SetStats(ctx context.Context, key model.StatusKey, journal []model.JournalEntry, stats model.StatusStats, expectRev *int64) (*model.ContestStatus, error) {
	filter := keyFilter(key)
	if expectRev != nil {
		filter["rev"] = *expectRev
	}
	if journal == nil {
		journal = []model.JournalEntry{}
	}
	if stats.Detail == nil {
		stats.Detail = []model.StatusDetail{}
	}
	return r.findOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{
			"journal": journal,
			"detail":  stats.Detail,
			"score":   stats.Score,
			"accept":  stats.Accept,
			"time":    stats.Time,
		},
		"$inc": bson.M{"rev": int64(1)},
	}, false)
}

func (r *MongoStatusRepository) SetBalloon(ctx context.Context, key model.StatusKey, pid int64, delivered bool) (*model.ContestStatus, error) {
	filter := keyFilter(key)
	filter["detail.pid"] = pid
	return r.findOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{"detail.$.balloon": delivered},
		"$inc": bson.M{"rev": int64(1)},
	}, false)
}

func (r *MongoStatusRepository) SetRanked(ctx context.Context, key model.StatusKey, ranked bool) (*model.ContestStatus, error) {
	return r.findOneAndUpdate(ctx, keyFilter(key), bson.M{
		"$set": bson.M{"ranked": ranked},
		"$inc": bson.M{"rev": int64(1)},
	}, false)
}

func (r *MongoStatusRepository) ListByContest(ctx context.Context, domainID string, tid int64) iter.Seq2[*model.ContestStatus, error] {
	return func(yield func(*model.ContestStatus, error) bool) {
		cursor, err := r.statuses.Find(ctx, bson.M{"domain_id": domainID, "tid": tid})
		if err != nil {
			yield(nil, fmt.Errorf("ListByContest failed at find: %w", err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var status model.ContestStatus
			if err := cursor.Decode(&status); err != nil {
				yield(nil, fmt.Errorf("ListByContest failed at decode: %w", err))
				return
			}
			if !yield(&status, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(nil, fmt.Errorf("ListByContest failed at cursor: %w", err))
		}
	}
}

func (r *MongoStatusRepository) ListByUser(ctx context.Context, domainID string, uid int64, tids []int64) ([]*model.ContestStatus, error) {
	cursor, err := r.statuses.Find(ctx, bson.M{
		"domain_id": domainID,
		"uid":       uid,
		"tid":       bson.M{"$in": tids},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.ContestStatus
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoStatusRepository) Delete(ctx context.Context, key model.StatusKey) error {
	_, err := r.statuses.DeleteOne(ctx, keyFilter(key))
	return err
}

func (r *MongoStatusRepository) CountAttended(ctx context.Context, domainID string, tid int64) (int64, error) {
	return r.statuses.CountDocuments(ctx, bson.M{"domain_id": domainID, "tid": tid, "attend": 1})
}

func (r *MongoStatusRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.statuses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "domain_id", Value: 1}, {Key: "uid", Value: 1}, {Key: "tid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "tid", Value: 1}, {Key: "accept", Value: -1}, {Key: "time", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "tid", Value: 1}, {Key: "detail.accept", Value: 1}, {Key: "detail.balloon", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "tid", Value: 1}, {Key: "uid", Value: 1}, {Key: "detail.pid", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes failed at contest.status: %w", err)
	}
	return nil
}
