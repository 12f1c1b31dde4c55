package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const recordCollection = "record"

type MongoRecordRepository struct {
	records *mongo.Collection
}

var _ RecordRepository = (*MongoRecordRepository)(nil)

func NewMongoRecordRepository(db *mongo.Database) *MongoRecordRepository {
	return &MongoRecordRepository{
		records: db.Collection(recordCollection),
	}
}

func (r *MongoRecordRepository) DetachContest(ctx context.Context, rid primitive.ObjectID) error {
	_, err := r.records.UpdateOne(ctx,
		bson.M{"_id": rid},
		bson.M{"$unset": bson.M{"tid": ""}},
	)
	return err
}
