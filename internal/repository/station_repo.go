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

type StationRepo interface {
	Insert(ctx context.Context, station *model.Station) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Station, error)
	FindBySlug(ctx context.Context, slug string) (*model.Station, error)
	List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Station, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByLogoMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error)
}

type stationRepoImpl struct {
	col *mongo.Collection
}

func NewStationRepo(db *mongo.Database) StationRepo {
	return &stationRepoImpl{
		col: db.Collection(consts.CollStations),
	}
}

func (s *stationRepoImpl) Insert(ctx context.Context, station *model.Station) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, station)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *stationRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Station, error) {
	var station model.Station
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&station)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// FindBySlug 大小写不敏感匹配，与唯一索引的 collation 保持一致
func (s *stationRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Station, error) {
	var station model.Station
	err := s.col.FindOne(ctx, RegexSearch("slug", "^"+slug+"$")).Decode(&station)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func (s *stationRepoImpl) List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Station, int64, error) {
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

	var stations []*model.Station
	if err = cursor.All(ctx, &stations); err != nil {
		return nil, 0, err
	}
	return stations, total, nil
}

func (s *stationRepoImpl) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": update})
	return err
}

func (s *stationRepoImpl) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *stationRepoImpl) CountByLogoMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"logo_media_id": mediaID})
}
