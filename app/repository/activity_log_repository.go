package repository

//go:generate mockgen -source=activity_log_repository.go -destination=mocks/activity_log_repository_mock.go -package=mocks

import (
	"context"
	"time"

	"sports-federation-backend/app/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityLogCollection = "activity_logs"

// ActivityLogFilter menentukan scope daftar / statistik log.
type ActivityLogFilter struct {
	Level  string
	Action string
	UserID string
	Since  *time.Time
	Limit  int64
	Offset int64
}

// ActivityLogRepository menyimpan dan membaca log aktivitas di MongoDB.
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, int64, error)
	Statistics(ctx context.Context, filter ActivityLogFilter) (*model.ActivityStatistics, error)
}

type activityLogRepository struct {
	mongo *mongo.Database
}

// NewActivityLogRepository membuat instance baru activityLogRepository.
func NewActivityLogRepository(mongoDB *mongo.Database) ActivityLogRepository {
	return &activityLogRepository{mongo: mongoDB}
}

func (r *activityLogRepository) coll() *mongo.Collection {
	return r.mongo.Collection(activityLogCollection)
}

// buildLogMatch membentuk filter dasar query log.
func buildLogMatch(filter ActivityLogFilter) bson.M {
	match := bson.M{}
	if filter.Level != "" {
		match["level"] = filter.Level
	}
	if filter.Action != "" {
		match["action"] = filter.Action
	}
	if filter.UserID != "" {
		match["userId"] = filter.UserID
	}
	if filter.Since != nil {
		match["createdAt"] = bson.M{"$gte": *filter.Since}
	}
	return match
}

func (r *activityLogRepository) Insert(ctx context.Context, entry *model.ActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.coll().InsertOne(ctx, entry)
	return err
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, int64, error) {
	match := buildLogMatch(filter)

	total, err := r.coll().CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit).SetSkip(filter.Offset)
	}
	cur, err := r.coll().Find(ctx, match, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	logs := []model.ActivityLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Statistics mengelompokkan jumlah log per action (10 teratas) dan per level.
func (r *activityLogRepository) Statistics(ctx context.Context, filter ActivityLogFilter) (*model.ActivityStatistics, error) {
	match := buildLogMatch(filter)

	byAction, err := r.groupCount(ctx, match, "$action", 10)
	if err != nil {
		return nil, err
	}
	byLevel, err := r.groupCount(ctx, match, "$level", 0)
	if err != nil {
		return nil, err
	}
	return &model.ActivityStatistics{ByAction: byAction, ByLevel: byLevel}, nil
}

func (r *activityLogRepository) groupCount(ctx context.Context, match bson.M, key string, limit int64) ([]model.ActivityStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   key,
			"total": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.ActivityStat{}
	for cur.Next(ctx) {
		var row model.ActivityStat
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Key == "" {
			row.Key = "unknown"
		}
		out = append(out, row)
	}
	return out, cur.Err()
}
