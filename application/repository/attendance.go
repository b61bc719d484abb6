package repository

import (
	"context"
	"sync"
	"time"

	"clockedin.io/entities"
	"clockedin.io/infrastructure/database/connection/datastore"
	mongo_repository "clockedin.io/infrastructure/database/repository/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var attendanceOnce = sync.Once{}

var attendanceRepository AttendanceRepository

type AttendanceRepository struct {
	repo mongo_repository.MongoRepository[entities.AttendanceRecord]
}

func AttendanceRepo() *AttendanceRepository {
	attendanceOnce.Do(func() {
		attendanceRepository = AttendanceRepository{
			repo: mongo_repository.MongoRepository[entities.AttendanceRecord]{Model: datastore.AttendanceModel},
		}
	})
	return &attendanceRepository
}

func (r *AttendanceRepository) Insert(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error) {
	return r.repo.CreateOne(ctx, record)
}

// CloseLatestOpen closes the newest record whose check-out is still null and
// derives totalMinutes from the record's own check-in inside the same update.
// The null check-out is part of the filter, so the match, the close, and the
// minutes write are one atomic server-side step: a record can only ever be
// closed once, and a closed record always carries its total.
func (r *AttendanceRepository) CloseLatestOpen(ctx context.Context, userID string, at time.Time, flags []string) (*entities.AttendanceRecord, error) {
	var sort interface{} = map[string]interface{}{"checkInAt": -1}
	// round(seconds/60) expressed as floor(x + 0.5), clamped at zero so a
	// skewed device clock never yields a negative total.
	elapsedMinutes := bson.M{"$divide": bson.A{bson.M{"$subtract": bson.A{at, "$checkInAt"}}, 60000}}
	totalMinutes := bson.M{"$toInt": bson.M{"$max": bson.A{0, bson.M{"$floor": bson.M{"$add": bson.A{elapsedMinutes, 0.5}}}}}}
	return r.repo.FindOneAndUpdatePipeline(ctx, map[string]interface{}{
		"userID":     userID,
		"checkOutAt": nil,
	}, mongo.Pipeline{{{Key: "$set", Value: bson.M{
		"checkOutAt":   at,
		"status":       entities.AttendanceStatusClosed,
		"flags":        flags,
		"totalMinutes": totalMinutes,
		"updatedAt":    time.Now(),
	}}}}, mongo_repository.FindOptions{Sort: &sort})
}

func (r *AttendanceRepository) CountOpen(ctx context.Context, userID string) (int64, error) {
	return r.repo.CountDocs(ctx, map[string]interface{}{
		"userID":     userID,
		"checkOutAt": nil,
	})
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string, limit int64) (*[]entities.AttendanceRecord, error) {
	var sort interface{} = map[string]interface{}{"checkInAt": -1}
	return r.repo.FindMany(ctx, map[string]interface{}{
		"userID": userID,
	}, mongo_repository.FindOptions{Sort: &sort, Limit: &limit})
}
