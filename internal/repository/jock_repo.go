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

type JockRepo interface {
	Insert(ctx context.Context, jock *model.Jock) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Jock, error)
	List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Jock, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByImageMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error)
}

type jockRepoImpl struct {
	col *mongo.Collection
}

func NewJockRepo(db *mongo.Database) JockRepo {
	return &jockRepoImpl{
		col: db.Collection(consts.CollJocks),
	}
}

func (s *jockRepoImpl) Insert(ctx context.Context, jock *model.Jock) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, jock)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *jockRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Jock, error) {
	var jock model.Jock
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&jock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &jock, nil
}

func (s *jockRepoImpl) List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Jock, int64, error) {
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

	var jocks []*model.Jock
	if err = cursor.All(ctx, &jocks); err != nil {
		return nil, 0, err
	}
	return jocks, total, nil
}

func (s *jockRepoImpl) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": update})
	return err
}

func (s *jockRepoImpl) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *jockRepoImpl) CountByImageMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"image_media_id": mediaID})
}
