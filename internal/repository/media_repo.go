package repository

import (
	"Airwave/internal/model"
	"Airwave/internal/pkg/consts"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MediaRepo interface {
	Insert(ctx context.Context, media *model.Media) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Media, error)
	List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Media, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type mediaRepoImpl struct {
	col *mongo.Collection
}

func NewMediaRepo(db *mongo.Database) MediaRepo {
	return &mediaRepoImpl{
		col: db.Collection(consts.CollMedia),
	}
}

func (s *mediaRepoImpl) Insert(ctx context.Context, media *model.Media) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, media)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *mediaRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Media, error) {
	var media model.Media
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (s *mediaRepoImpl) List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Media, int64, error) {
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, filter, q.FindOptions("created_at"))
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var medias []*model.Media
	if err = cursor.All(ctx, &medias); err != nil {
		return nil, 0, err
	}
	return medias, total, nil
}

func (s *mediaRepoImpl) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": update})
	return err
}

func (s *mediaRepoImpl) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
