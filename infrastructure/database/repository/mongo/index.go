package mongo

import (
	"context"
	"time"

	"clockedin.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByID(ctx context.Context, id string) (*T, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{"_id": id})
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	findOpts := options.FindOne()
	if len(opts) != 0 && opts[0].Sort != nil {
		findOpts.SetSort(*opts[0].Sort)
	}
	if len(opts) != 0 && opts[0].Projection != nil {
		findOpts.SetProjection(*opts[0].Projection)
	}

	var result T
	err := repo.Model.FindOne(c, filter, findOpts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*[]T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	findOpts := options.Find()
	if len(opts) != 0 && opts[0].Sort != nil {
		findOpts.SetSort(*opts[0].Sort)
	}
	if len(opts) != 0 && opts[0].Skip != nil {
		findOpts.SetSkip(*opts[0].Skip)
	}
	if len(opts) != 0 && opts[0].Limit != nil {
		findOpts.SetLimit(*opts[0].Limit)
	}

	cursor, err := repo.Model.Find(c, filter, findOpts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	results := []T{}
	if err = cursor.All(c, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	count, err := repo.Model.CountDocuments(c, filter)
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(ctx context.Context, id string, payload map[string]interface{}) (int64, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(c, bson.M{"_id": id}, bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByID", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (repo *MongoRepository[T]) UpsertByFilter(ctx context.Context, filter map[string]interface{}, payload map[string]interface{}) error {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	upsert := true
	_, err := repo.Model.UpdateOne(c, filter, bson.M{"$set": payload}, &options.UpdateOptions{Upsert: &upsert})
	if err != nil {
		logger.Error("mongo error occured while running UpsertByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return err
}

// FindOneAndUpdate applies payload to the single document matching filter and
// returns the post-update document. The match and the write are one atomic
// step on the server, which is what lets a check-out close an open record
// only if no concurrent call closed it first.
func (repo *MongoRepository[T]) FindOneAndUpdate(ctx context.Context, filter map[string]interface{}, payload map[string]interface{}, opts ...FindOptions) (*T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if len(opts) != 0 && opts[0].Sort != nil {
		updateOpts.SetSort(*opts[0].Sort)
	}

	var result T
	err := repo.Model.FindOneAndUpdate(c, filter, bson.M{"$set": payload}, updateOpts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneAndUpdate", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

// FindOneAndUpdatePipeline is FindOneAndUpdate with an aggregation pipeline
// update, for writes that derive new fields from the matched document's own
// values in the same atomic step. The pipeline owns its stages in full; no
// $set wrapping or updatedAt stamping happens here.
func (repo *MongoRepository[T]) FindOneAndUpdatePipeline(ctx context.Context, filter map[string]interface{}, pipeline mongo.Pipeline, opts ...FindOptions) (*T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	updateOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if len(opts) != 0 && opts[0].Sort != nil {
		updateOpts.SetSort(*opts[0].Sort)
	}

	var result T
	err := repo.Model.FindOneAndUpdate(c, filter, pipeline, updateOpts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneAndUpdatePipeline", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 10*time.Second)
}
