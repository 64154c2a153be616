package service

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/pkg/util"
	"Airwave/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StationService interface {
	Create(ctx context.Context, d *dto.CreateStationDTO, logoMediaID *primitive.ObjectID) (*dto.StationDTO, error)
	Update(ctx context.Context, id string, d *dto.UpdateStationDTO, logoMediaID *primitive.ObjectID) (*dto.StationDTO, error)
	Get(ctx context.Context, id string) (*dto.StationDTO, error)
	List(ctx context.Context, q *dto.StationListDTO) ([]*dto.StationDTO, int64, error)
	Delete(ctx context.Context, id string) error
}

type stationServiceImpl struct {
	stationRepo repository.StationRepo
	programRepo repository.ProgramRepo
	mediaSvc    MediaService
}

func NewStationService(stationRepo repository.StationRepo, programRepo repository.ProgramRepo, mediaSvc MediaService) StationService {
	return &stationServiceImpl{
		stationRepo: stationRepo,
		programRepo: programRepo,
		mediaSvc:    mediaSvc,
	}
}

func (s *stationServiceImpl) toDTO(ctx context.Context, st *model.Station) *dto.StationDTO {
	out := &dto.StationDTO{}
	_ = copier.Copy(out, st)
	out.ID = st.ID.Hex()
	if st.LogoMediaID != nil {
		out.LogoMediaID = st.LogoMediaID.Hex()
		out.LogoURL = s.mediaSvc.URLFor(ctx, st.LogoMediaID)
	}
	return out
}

func (s *stationServiceImpl) Create(ctx context.Context, d *dto.CreateStationDTO, logoMediaID *primitive.ObjectID) (*dto.StationDTO, error) {
	slug := d.Slug
	if slug == "" {
		slug = d.Name
	}
	slug = util.Slugify(slug)
	if slug == "" {
		return nil, validationf("slug must contain url-safe characters")
	}

	existing, err := s.stationRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrSlugTaken, slug)
	}

	status := d.Status
	if status == "" {
		status = model.StationStatusActive
	}

	now := time.Now()
	station := &model.Station{
		Name:          d.Name,
		Slug:          slug,
		Frequency:     d.Frequency,
		LocationGroup: d.LocationGroup,
		Status:        status,
		LogoMediaID:   logoMediaID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.stationRepo.Insert(ctx, station)
	if err != nil {
		return nil, err
	}
	station.ID = id

	return s.toDTO(ctx, station), nil
}

func (s *stationServiceImpl) Update(ctx context.Context, id string, d *dto.UpdateStationDTO, logoMediaID *primitive.ObjectID) (*dto.StationDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.stationRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrStationNotFound
	}

	merged := *existing
	if d.Name != nil {
		merged.Name = *d.Name
	}
	if d.Slug != nil {
		slug := util.Slugify(*d.Slug)
		if slug == "" {
			return nil, validationf("slug must contain url-safe characters")
		}
		other, err := s.stationRepo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != oid {
			return nil, fmt.Errorf("%w: %q", ErrSlugTaken, slug)
		}
		merged.Slug = slug
	}
	if d.Frequency != nil {
		merged.Frequency = *d.Frequency
	}
	if d.LocationGroup != nil {
		merged.LocationGroup = *d.LocationGroup
	}
	if d.Status != nil {
		merged.Status = *d.Status
	}

	oldLogo := existing.LogoMediaID
	if logoMediaID != nil {
		merged.LogoMediaID = logoMediaID
	}
	merged.UpdatedAt = time.Now()

	// logo_media_id 始终写入，nil 落库为 null
	update := bson.M{
		"name":           merged.Name,
		"slug":           merged.Slug,
		"frequency":      merged.Frequency,
		"location_group": merged.LocationGroup,
		"status":         merged.Status,
		"logo_media_id":  merged.LogoMediaID,
		"updated_at":     merged.UpdatedAt,
	}

	if err = s.stationRepo.UpdateByID(ctx, oid, update); err != nil {
		return nil, err
	}

	// 台标替换后回收旧的 Media
	if logoMediaID != nil && oldLogo != nil && *oldLogo != *logoMediaID {
		if err = s.mediaSvc.Remove(ctx, *oldLogo); err != nil {
			log.WarnContext(ctx, "failed to remove replaced station logo", "mediaId", oldLogo.Hex(), "err", err)
		}
	}

	return s.toDTO(ctx, &merged), nil
}

func (s *stationServiceImpl) Get(ctx context.Context, id string) (*dto.StationDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	station, err := s.stationRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, ErrStationNotFound
	}
	return s.toDTO(ctx, station), nil
}

func (s *stationServiceImpl) List(ctx context.Context, q *dto.StationListDTO) ([]*dto.StationDTO, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter = repository.RegexSearch("name", q.Search)
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.LocationGroup != "" {
		filter["location_group"] = q.LocationGroup
	}

	stations, total, err := s.stationRepo.List(ctx, filter, repository.ListQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.StationDTO, 0, len(stations))
	for _, st := range stations {
		out = append(out, s.toDTO(ctx, st))
	}
	return out, total, nil
}

// Delete 仍有节目引用的电台不允许删除，需先行处理节目
func (s *stationServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.stationRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStationNotFound
	}

	n, err := s.programRepo.CountByStation(ctx, oid)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d program(s)", ErrStationHasPrograms, n)
	}

	return s.stationRepo.DeleteByID(ctx, oid)
}
