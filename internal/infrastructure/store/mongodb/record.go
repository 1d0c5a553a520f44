package mongodb

import (
	"context"
	"errors"
	"log"
	"time"

	"interpreter/internal/domain/entity"
	"interpreter/internal/domain/repository"
	"interpreter/internal/infrastructure/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoHistoryRepo struct {
	recordsCol *mongo.Collection
}

func NewMongoHistoryRepo(db *mongo.Database) repository.HistoryRepository {
	col := db.Collection("explanation_records")

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{bson.E{Key: "created_at", Value: -1}},
	})

	return &MongoHistoryRepo{
		recordsCol: col,
	}
}

func (r *MongoHistoryRepo) Save(ctx context.Context, rec *entity.ExplanationRecord) error {
	metrics.IncHistoryOp("save")

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.recordsCol.InsertOne(ctx, rec)
	if err != nil {
		metrics.IncError("mongo_history_repo", "save_error")
		return err
	}
	return nil
}

func (r *MongoHistoryRepo) GetByID(ctx context.Context, id string) (*entity.ExplanationRecord, error) {
	metrics.IncHistoryOp("get")

	var rec entity.ExplanationRecord
	err := r.recordsCol.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		metrics.IncError("mongo_history_repo", "get_error")
		return nil, err
	}
	return &rec, nil
}

func (r *MongoHistoryRepo) List(ctx context.Context, limit int64) ([]*entity.ExplanationRecord, error) {
	metrics.IncHistoryOp("list")

	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.recordsCol.Find(ctx, bson.D{}, opts)
	if err != nil {
		metrics.IncError("mongo_history_repo", "list_error")
		return nil, err
	}
	defer func() {
		err := cur.Close(ctx)
		if err != nil {
			log.Printf("close cursor err: %s", err)
		}
	}()

	var records []*entity.ExplanationRecord
	for cur.Next(ctx) {
		var rec entity.ExplanationRecord
		if err := cur.Decode(&rec); err != nil {
			metrics.IncError("mongo_history_repo", "list_decode_error")
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := cur.Err(); err != nil {
		metrics.IncError("mongo_history_repo", "list_cursor_error")
	}
	return records, cur.Err()
}

func (r *MongoHistoryRepo) Delete(ctx context.Context, id string) error {
	metrics.IncHistoryOp("delete")

	res, err := r.recordsCol.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		metrics.IncError("mongo_history_repo", "delete_error")
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrRecordNotFound
	}
	return nil
}
