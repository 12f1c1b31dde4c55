package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/to404hanga/online_judge_contest/model"
)

const (
	contestCollection = "contest"
	systemCollection  = "system"
	contestCounterID  = "contest_counter"
)

type MongoContestRepository struct {
	contests *mongo.Collection
	system   *mongo.Collection
}

var _ ContestRepository = (*MongoContestRepository)(nil)

func NewMongoContestRepository(db *mongo.Database) *MongoContestRepository {
	return &MongoContestRepository{
		contests: db.Collection(contestCollection),
		system:   db.Collection(systemCollection),
	}
}

func (r *MongoContestRepository) NextID(ctx context.Context) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.system.FindOneAndUpdate(ctx,
		bson.M{"_id": contestCounterID},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("NextID failed: %w", err)
	}
	return counter.Value, nil
}

func (r *MongoContestRepository) Insert(ctx context.Context, contest *model.Contest) error {
	_, err := r.contests.InsertOne(ctx, contest)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoContestRepository) Get(ctx context.Context, domainID string, tid int64) (*model.Contest, error) {
	var contest model.Contest
	err := r.contests.FindOne(ctx, bson.M{"domain_id": domainID, "_id": tid}).Decode(&contest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func contestUpdateDoc(u *model.ContestUpdate) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Rule != nil {
		set["rule"] = *u.Rule
	}
	if u.Private != nil {
		set["private"] = *u.Private
	}
	if u.BeginAt != nil {
		set["begin_at"] = *u.BeginAt
	}
	if u.EndAt != nil {
		set["end_at"] = *u.EndAt
	}
	if u.PIDs != nil {
		set["pids"] = u.PIDs
	}
	return set
}

func (r *MongoContestRepository) Update(ctx context.Context, domainID string, tid int64, update *model.ContestUpdate) (*model.Contest, error) {
	if update.IsEmpty() {
		return r.Get(ctx, domainID, tid)
	}
	var contest model.Contest
	err := r.contests.FindOneAndUpdate(ctx,
		bson.M{"domain_id": domainID, "_id": tid},
		bson.M{"$set": contestUpdateDoc(update)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&contest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *MongoContestRepository) List(ctx context.Context, domainID string, rule *model.RuleID, offset, limit int) ([]*model.Contest, error) {
	filter := bson.M{"domain_id": domainID}
	if rule != nil {
		filter["rule"] = *rule
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.contests.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]*model.Contest, 0, limit)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoContestRepository) IncAttend(ctx context.Context, domainID string, tid int64, delta int64) error {
	_, err := r.contests.UpdateOne(ctx,
		bson.M{"domain_id": domainID, "_id": tid},
		bson.M{"$inc": bson.M{"attend": delta}},
	)
	return err
}

func (r *MongoContestRepository) SetAttend(ctx context.Context, domainID string, tid int64, attend int64) error {
	_, err := r.contests.UpdateOne(ctx,
		bson.M{"domain_id": domainID, "_id": tid},
		bson.M{"$set": bson.M{"attend": attend}},
	)
	return err
}

func (r *MongoContestRepository) ListEndedAfter(ctx context.Context, since time.Time) ([]*model.Contest, error) {
	cursor, err := r.contests.Find(ctx, bson.M{"end_at": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Contest
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoContestRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.contests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "domain_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "pids", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "domain_id", Value: 1}, {Key: "rule", Value: 1}, {Key: "_id", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes failed at contest: %w", err)
	}
	return nil
}
