package service

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"Airwave/internal/pkg/util"

	"github.com/jinzhu/copier"
	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramService interface {
	Create(ctx context.Context, d *dto.CreateProgramDTO, imageMediaID *primitive.ObjectID) (*dto.ProgramDTO, error)
	Update(ctx context.Context, id string, d *dto.UpdateProgramDTO, imageMediaID *primitive.ObjectID) (*dto.ProgramDTO, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *dto.ProgramListDTO) ([]*dto.ProgramDTO, int64, error)
	ScheduleByDay(ctx context.Context, day string, station string) ([]*dto.ProgramDTO, error)
	ScheduleByStation(ctx context.Context, station string) ([]*dto.ProgramDTO, error)
	WeeklyGrid(ctx context.Context, station string) (map[int][]*dto.ProgramDTO, error)
	NowAiring(ctx context.Context, station string) ([]*dto.ProgramDTO, error)
	FindConflicts(ctx context.Context, station string) ([]*dto.ConflictPairDTO, error)
}

type programServiceImpl struct {
	programRepo repository.ProgramRepo
	stationRepo repository.StationRepo
	mediaSvc    MediaService
	clock       clockwork.Clock
}

func NewProgramService(programRepo repository.ProgramRepo, stationRepo repository.StationRepo, mediaSvc MediaService, clock clockwork.Clock) ProgramService {
	return &programServiceImpl{
		programRepo: programRepo,
		stationRepo: stationRepo,
		mediaSvc:    mediaSvc,
		clock:       clock,
	}
}

// parseID 校验并解析十六进制 ObjectID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func parseDayList(raw []string) ([]int, error) {
	days := make([]int, 0, len(raw))
	for _, s := range raw {
		d, err := parseDay(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func (s *programServiceImpl) toDTO(ctx context.Context, p *model.Program) *dto.ProgramDTO {
	out := &dto.ProgramDTO{}
	_ = copier.Copy(out, p)
	out.ID = p.ID.Hex()
	out.StationID = p.StationID.Hex()
	if p.ImageMediaID != nil {
		out.ImageMediaID = p.ImageMediaID.Hex()
		out.ImageURL = s.mediaSvc.URLFor(ctx, p.ImageMediaID)
	}
	return out
}

// Create 校验电台与字段约束、生成 slug、扫描同电台冲突后落库
func (s *programServiceImpl) Create(ctx context.Context, d *dto.CreateProgramDTO, imageMediaID *primitive.ObjectID) (*dto.ProgramDTO, error) {
	stationID, err := parseID(d.Station)
	if err != nil {
		return nil, err
	}
	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, ErrStationNotFound
	}

	days, err := parseDayList(d.Days)
	if err != nil {
		return nil, err
	}
	if err = validateDays(days); err != nil {
		return nil, err
	}
	if _, err = newWindow(d.StartTime, d.EndTime); err != nil {
		return nil, err
	}

	isActive := true
	if d.IsActive != nil {
		isActive = *d.IsActive
	}

	slug, err := s.resolveSlug(ctx, d.Slug, d.Name, station.Slug, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	candidate := &model.Program{
		StationID: stationID,
		Days:      days,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		IsActive:  isActive,
	}
	if isActive {
		if err = s.checkConflicts(ctx, candidate, primitive.NilObjectID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	program := &model.Program{
		StationID:       stationID,
		Name:            d.Name,
		Slug:            slug,
		Description:     d.Description,
		ImageMediaID:    imageMediaID,
		Days:            days,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		DurationMinutes: d.Duration,
		IsActive:        isActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.programRepo.Insert(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = id

	return s.toDTO(ctx, program), nil
}

// Update 未提供的字段保持原值；days/startTime/endTime/station/isActive
// 任一变化时，用合并后的记录重跑完整校验与冲突扫描（排除自身）
func (s *programServiceImpl) Update(ctx context.Context, id string, d *dto.UpdateProgramDTO, imageMediaID *primitive.ObjectID) (*dto.ProgramDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.programRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProgramNotFound
	}

	merged := *existing
	scheduleTouched := false

	if d.Station != nil {
		stationID, err := parseID(*d.Station)
		if err != nil {
			return nil, err
		}
		station, err := s.stationRepo.FindByID(ctx, stationID)
		if err != nil {
			return nil, err
		}
		if station == nil {
			return nil, ErrStationNotFound
		}
		if stationID != existing.StationID {
			merged.StationID = stationID
			scheduleTouched = true
		}
	}
	if len(d.Days) > 0 {
		days, err := parseDayList(d.Days)
		if err != nil {
			return nil, err
		}
		merged.Days = days
		scheduleTouched = true
	}
	if d.StartTime != nil {
		merged.StartTime = *d.StartTime
		scheduleTouched = true
	}
	if d.EndTime != nil {
		merged.EndTime = *d.EndTime
		scheduleTouched = true
	}
	if d.IsActive != nil && *d.IsActive != existing.IsActive {
		merged.IsActive = *d.IsActive
		scheduleTouched = true
	}
	if d.Name != nil {
		merged.Name = *d.Name
	}
	if d.Description != nil {
		merged.Description = *d.Description
	}
	if d.Duration != nil {
		merged.DurationMinutes = d.Duration
	}
	if d.Slug != nil {
		slug, err := s.resolveSlug(ctx, *d.Slug, merged.Name, "", oid)
		if err != nil {
			return nil, err
		}
		merged.Slug = slug
	}

	if scheduleTouched {
		if err = validateDays(merged.Days); err != nil {
			return nil, err
		}
		if _, err = newWindow(merged.StartTime, merged.EndTime); err != nil {
			return nil, err
		}
		if merged.IsActive {
			if err = s.checkConflicts(ctx, &merged, oid); err != nil {
				return nil, err
			}
		}
	}

	oldImage := existing.ImageMediaID
	if imageMediaID != nil {
		merged.ImageMediaID = imageMediaID
	}
	merged.UpdatedAt = time.Now()

	// 可选字段始终写入，空值与 nil 落库后即完成清除
	update := bson.M{
		"station_id":       merged.StationID,
		"name":             merged.Name,
		"slug":             merged.Slug,
		"description":      merged.Description,
		"days":             merged.Days,
		"start_time":       merged.StartTime,
		"end_time":         merged.EndTime,
		"duration_minutes": merged.DurationMinutes,
		"image_media_id":   merged.ImageMediaID,
		"is_active":        merged.IsActive,
		"updated_at":       merged.UpdatedAt,
	}

	if err = s.programRepo.UpdateByID(ctx, oid, update); err != nil {
		return nil, err
	}

	// 图片替换后回收旧的 Media 记录与 blob
	if imageMediaID != nil && oldImage != nil && *oldImage != *imageMediaID {
		if err = s.mediaSvc.Remove(ctx, *oldImage); err != nil {
			log.WarnContext(ctx, "failed to remove replaced program image", "mediaId", oldImage.Hex(), "err", err)
		}
	}

	return s.toDTO(ctx, &merged), nil
}

func (s *programServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.programRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProgramNotFound
	}
	return s.programRepo.DeleteByID(ctx, oid)
}

func (s *programServiceImpl) List(ctx context.Context, q *dto.ProgramListDTO) ([]*dto.ProgramDTO, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter = repository.RegexSearch("name", q.Search)
	}
	if q.IsActive != nil {
		filter["is_active"] = *q.IsActive
	}
	if q.Station != "" {
		stationID, err := parseID(q.Station)
		if err != nil {
			return nil, 0, err
		}
		filter["station_id"] = stationID
	}
	if q.Day != nil {
		if *q.Day < 0 || *q.Day > 6 {
			return nil, 0, validationf("day %d out of range [0..6]", *q.Day)
		}
		filter["days"] = *q.Day
	}

	programs, total, err := s.programRepo.List(ctx, filter, repository.ListQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.ProgramDTO, 0, len(programs))
	for _, p := range programs {
		out = append(out, s.toDTO(ctx, p))
	}
	return out, total, nil
}

// ScheduleByDay 某天的启用节目，按开始时间升序
func (s *programServiceImpl) ScheduleByDay(ctx context.Context, day string, station string) ([]*dto.ProgramDTO, error) {
	d, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	stationID, err := s.optionalStation(ctx, station)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.FindActiveByDay(ctx, d, stationID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProgramDTO, 0, len(programs))
	for _, p := range programs {
		out = append(out, s.toDTO(ctx, p))
	}
	return out, nil
}

// ScheduleByStation 某电台的启用节目，按 (最小星期, 开始时间) 排序
func (s *programServiceImpl) ScheduleByStation(ctx context.Context, station string) ([]*dto.ProgramDTO, error) {
	stationID, err := parseID(station)
	if err != nil {
		return nil, err
	}
	st, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStationNotFound
	}

	programs, err := s.programRepo.FindStationPrograms(ctx, stationID, true)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(programs, func(i, j int) bool {
		di, dj := minDay(programs[i].Days), minDay(programs[j].Days)
		if di != dj {
			return di < dj
		}
		return programs[i].StartTime < programs[j].StartTime
	})

	out := make([]*dto.ProgramDTO, 0, len(programs))
	for _, p := range programs {
		out = append(out, s.toDTO(ctx, p))
	}
	return out, nil
}

// WeeklyGrid 周播出表：节目出现在其 days 集合的每一天，跨午夜节目按起始时间排在当天靠后
func (s *programServiceImpl) WeeklyGrid(ctx context.Context, station string) (map[int][]*dto.ProgramDTO, error) {
	stationID, err := s.optionalStation(ctx, station)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.FindActive(ctx, stationID)
	if err != nil {
		return nil, err
	}

	grid := make(map[int][]*dto.ProgramDTO, 7)
	for d := 0; d <= 6; d++ {
		grid[d] = []*dto.ProgramDTO{}
	}
	// programs 已按 start_time 升序，逐日追加即保持日内有序
	for _, p := range programs {
		item := s.toDTO(ctx, p)
		for _, d := range p.Days {
			grid[d] = append(grid[d], item)
		}
	}
	return grid, nil
}

// NowAiring 当前在播节目，时间来自注入的时钟
func (s *programServiceImpl) NowAiring(ctx context.Context, station string) ([]*dto.ProgramDTO, error) {
	stationID, err := s.optionalStation(ctx, station)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	day := int(now.Weekday())
	minute := now.Hour()*60 + now.Minute()

	programs, err := s.programRepo.FindActiveByDay(ctx, day, stationID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProgramDTO, 0, len(programs))
	for _, p := range programs {
		if airingAt(p, day, minute) {
			out = append(out, s.toDTO(ctx, p))
		}
	}
	return out, nil
}

// FindConflicts 列出违反排播不变量的节目对，供后台人工处理。
// 并发写入可能绕过创建时的冲突扫描，此查询是兜底手段。
func (s *programServiceImpl) FindConflicts(ctx context.Context, station string) ([]*dto.ConflictPairDTO, error) {
	stationID, err := s.optionalStation(ctx, station)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.FindActive(ctx, stationID)
	if err != nil {
		return nil, err
	}

	byStation := make(map[primitive.ObjectID][]*model.Program)
	for _, p := range programs {
		byStation[p.StationID] = append(byStation[p.StationID], p)
	}

	var pairs []*dto.ConflictPairDTO
	for _, group := range byStation {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if ok, days := programsConflict(group[i], group[j]); ok {
					pairs = append(pairs, &dto.ConflictPairDTO{
						First:  *s.toDTO(ctx, group[i]),
						Second: *s.toDTO(ctx, group[j]),
						Days:   days,
					})
				}
			}
		}
	}
	return pairs, nil
}

// resolveSlug 显式 slug 查重；省略时由节目名+电台 slug+短随机后缀派生
func (s *programServiceImpl) resolveSlug(ctx context.Context, explicit, name, stationSlug string, selfID primitive.ObjectID) (string, error) {
	if explicit != "" {
		slug := util.Slugify(explicit)
		if slug == "" {
			return "", validationf("slug must contain url-safe characters")
		}
		existing, err := s.programRepo.FindBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if existing != nil && existing.ID != selfID {
			return "", fmt.Errorf("%w: %q", ErrSlugTaken, slug)
		}
		return slug, nil
	}

	base := util.Slugify(name)
	if stationSlug != "" {
		base = base + "-" + stationSlug
	}
	for i := 0; i < 3; i++ {
		slug := base + "-" + util.ShortSuffix()
		existing, err := s.programRepo.FindBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return slug, nil
		}
	}
	return "", fmt.Errorf("%w: could not derive unique slug for %q", ErrSlugTaken, name)
}

// checkConflicts 冲突候选集为同电台全部启用节目，命中时报告对方节目名
func (s *programServiceImpl) checkConflicts(ctx context.Context, candidate *model.Program, excludeID primitive.ObjectID) error {
	others, err := s.programRepo.FindStationPrograms(ctx, candidate.StationID, true)
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.ID == excludeID {
			continue
		}
		if ok, _ := programsConflict(candidate, other); ok {
			return fmt.Errorf("%w: overlaps with %q", ErrScheduleConflict, other.Name)
		}
	}
	return nil
}

func (s *programServiceImpl) optionalStation(ctx context.Context, station string) (*primitive.ObjectID, error) {
	if station == "" {
		return nil, nil
	}
	stationID, err := parseID(station)
	if err != nil {
		return nil, err
	}
	return &stationID, nil
}
