package repository

import (
	"context"
	"sync"

	"clockedin.io/application/utils"
	"clockedin.io/entities"
	"clockedin.io/infrastructure/database/connection/datastore"
	mongo_repository "clockedin.io/infrastructure/database/repository/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

var faceProfileOnce = sync.Once{}

var faceProfileRepository FaceProfileRepository

type FaceProfileRepository struct {
	repo mongo_repository.MongoRepository[entities.FaceProfile]
}

func FaceProfileRepo() *FaceProfileRepository {
	faceProfileOnce.Do(func() {
		faceProfileRepository = FaceProfileRepository{
			repo: mongo_repository.MongoRepository[entities.FaceProfile]{Model: datastore.FaceProfileModel},
		}
	})
	return &faceProfileRepository
}

func (r *FaceProfileRepository) FindByUserID(ctx context.Context, userID string) (*entities.FaceProfile, error) {
	return r.repo.FindOneByFilter(ctx, map[string]interface{}{"userID": userID})
}

// AppendPoses adds capture poses to the profile, creating it on first
// enrollment. $push keeps concurrent enrollments from overwriting each other.
func (r *FaceProfileRepository) AppendPoses(ctx context.Context, userID string, poses []entities.PoseEmbedding) (*entities.FaceProfile, error) {
	existing, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return r.repo.CreateOne(ctx, entities.FaceProfile{
			UserID: userID,
			Poses:  poses,
			ID:     utils.GenerateULIDString(),
		})
	}

	_, err = r.repo.Model.UpdateOne(ctx, bson.M{"userID": userID}, bson.M{
		"$push": bson.M{"poses": bson.M{"$each": poses}},
	})
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, userID)
}
