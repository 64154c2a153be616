package service

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JockService interface {
	Create(ctx context.Context, d *dto.CreateJockDTO, imageMediaID *primitive.ObjectID) (*dto.JockDTO, error)
	Update(ctx context.Context, id string, d *dto.UpdateJockDTO, imageMediaID *primitive.ObjectID) (*dto.JockDTO, error)
	Get(ctx context.Context, id string) (*dto.JockDTO, error)
	List(ctx context.Context, q *dto.ListQueryDTO) ([]*dto.JockDTO, int64, error)
	Delete(ctx context.Context, id string) error
}

type jockServiceImpl struct {
	jockRepo repository.JockRepo
	mediaSvc MediaService
}

func NewJockService(jockRepo repository.JockRepo, mediaSvc MediaService) JockService {
	return &jockServiceImpl{
		jockRepo: jockRepo,
		mediaSvc: mediaSvc,
	}
}

func (s *jockServiceImpl) toDTO(ctx context.Context, j *model.Jock) *dto.JockDTO {
	out := &dto.JockDTO{}
	_ = copier.Copy(out, j)
	out.ID = j.ID.Hex()
	if j.ImageMediaID != nil {
		out.ImageMediaID = j.ImageMediaID.Hex()
		out.ImageURL = s.mediaSvc.URLFor(ctx, j.ImageMediaID)
	}
	return out
}

func (s *jockServiceImpl) Create(ctx context.Context, d *dto.CreateJockDTO, imageMediaID *primitive.ObjectID) (*dto.JockDTO, error) {
	now := time.Now()
	jock := &model.Jock{
		Name:         d.Name,
		Bio:          d.Bio,
		ImageMediaID: imageMediaID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.jockRepo.Insert(ctx, jock)
	if err != nil {
		return nil, err
	}
	jock.ID = id

	return s.toDTO(ctx, jock), nil
}

func (s *jockServiceImpl) Update(ctx context.Context, id string, d *dto.UpdateJockDTO, imageMediaID *primitive.ObjectID) (*dto.JockDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.jockRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrJockNotFound
	}

	merged := *existing
	if d.Name != nil {
		merged.Name = *d.Name
	}
	if d.Bio != nil {
		merged.Bio = *d.Bio
	}

	oldImage := existing.ImageMediaID
	if imageMediaID != nil {
		merged.ImageMediaID = imageMediaID
	}
	merged.UpdatedAt = time.Now()

	update := bson.M{
		"name":           merged.Name,
		"bio":            merged.Bio,
		"image_media_id": merged.ImageMediaID,
		"updated_at":     merged.UpdatedAt,
	}

	if err = s.jockRepo.UpdateByID(ctx, oid, update); err != nil {
		return nil, err
	}

	// 头像替换后回收旧的 Media
	if imageMediaID != nil && oldImage != nil && *oldImage != *imageMediaID {
		if err = s.mediaSvc.Remove(ctx, *oldImage); err != nil {
			log.WarnContext(ctx, "failed to remove replaced jock image", "mediaId", oldImage.Hex(), "err", err)
		}
	}

	return s.toDTO(ctx, &merged), nil
}

func (s *jockServiceImpl) Get(ctx context.Context, id string) (*dto.JockDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	jock, err := s.jockRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if jock == nil {
		return nil, ErrJockNotFound
	}
	return s.toDTO(ctx, jock), nil
}

func (s *jockServiceImpl) List(ctx context.Context, q *dto.ListQueryDTO) ([]*dto.JockDTO, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter = repository.RegexSearch("name", q.Search)
	}

	jocks, total, err := s.jockRepo.List(ctx, filter, repository.ListQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.JockDTO, 0, len(jocks))
	for _, j := range jocks {
		out = append(out, s.toDTO(ctx, j))
	}
	return out, total, nil
}

func (s *jockServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.jockRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrJockNotFound
	}
	return s.jockRepo.DeleteByID(ctx, oid)
}
