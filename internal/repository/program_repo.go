package repository

import (
	"Airwave/internal/model"
	"Airwave/internal/pkg/consts"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgramRepo interface {
	Insert(ctx context.Context, program *model.Program) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Program, error)
	FindBySlug(ctx context.Context, slug string) (*model.Program, error)
	List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Program, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error

	// FindActive 查询启用节目；stationID 为空时跨全部电台。
	// 按 start_time 升序返回（HH:MM:SS 字典序即时间序）。
	FindActive(ctx context.Context, stationID *primitive.ObjectID) ([]*model.Program, error)
	// FindActiveByDay 查询某天的启用节目，可按电台过滤
	FindActiveByDay(ctx context.Context, day int, stationID *primitive.ObjectID) ([]*model.Program, error)
	// FindStationPrograms 某电台的全部节目，供冲突候选集扫描
	FindStationPrograms(ctx context.Context, stationID primitive.ObjectID, activeOnly bool) ([]*model.Program, error)
	CountByImageMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error)
	CountByStation(ctx context.Context, stationID primitive.ObjectID) (int64, error)
}

type programRepoImpl struct {
	col *mongo.Collection
}

func NewProgramRepo(db *mongo.Database) ProgramRepo {
	return &programRepoImpl{
		col: db.Collection(consts.CollPrograms),
	}
}

func (s *programRepoImpl) Insert(ctx context.Context, program *model.Program) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *programRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Program, error) {
	var program model.Program
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (s *programRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Program, error) {
	var program model.Program
	err := s.col.FindOne(ctx, RegexSearch("slug", "^"+slug+"$")).Decode(&program)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (s *programRepoImpl) List(ctx context.Context, filter bson.M, q ListQuery) ([]*model.Program, int64, error) {
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

	var programs []*model.Program
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

func (s *programRepoImpl) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": update})
	return err
}

func (s *programRepoImpl) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *programRepoImpl) FindActive(ctx context.Context, stationID *primitive.ObjectID) ([]*model.Program, error) {
	filter := bson.M{"is_active": true}
	if stationID != nil {
		filter["station_id"] = *stationID
	}
	return s.findSortedByStart(ctx, filter)
}

func (s *programRepoImpl) FindActiveByDay(ctx context.Context, day int, stationID *primitive.ObjectID) ([]*model.Program, error) {
	filter := bson.M{"is_active": true, "days": day}
	if stationID != nil {
		filter["station_id"] = *stationID
	}
	return s.findSortedByStart(ctx, filter)
}

func (s *programRepoImpl) FindStationPrograms(ctx context.Context, stationID primitive.ObjectID, activeOnly bool) ([]*model.Program, error) {
	filter := bson.M{"station_id": stationID}
	if activeOnly {
		filter["is_active"] = true
	}
	return s.findSortedByStart(ctx, filter)
}

func (s *programRepoImpl) findSortedByStart(ctx context.Context, filter bson.M) ([]*model.Program, error) {
	cursor, err := s.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var programs []*model.Program
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (s *programRepoImpl) CountByImageMedia(ctx context.Context, mediaID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"image_media_id": mediaID})
}

func (s *programRepoImpl) CountByStation(ctx context.Context, stationID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"station_id": stationID})
}
