package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存实现的仓储与对象存储替身，无外部依赖

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*model.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*model.Program)}
}

func (s *fakeProgramRepo) Insert(_ context.Context, program *model.Program) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *program
	cp.ID = id
	s.programs[id] = &cp
	return id, nil
}

func (s *fakeProgramRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Program, error) {
	p, ok := s.programs[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProgramRepo) FindBySlug(_ context.Context, slug string) (*model.Program, error) {
	for _, p := range s.programs {
		if strings.EqualFold(p.Slug, slug) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeProgramRepo) List(_ context.Context, filter bson.M, _ repository.ListQuery) ([]*model.Program, int64, error) {
	var out []*model.Program
	for _, p := range s.programs {
		if v, ok := filter["is_active"]; ok && p.IsActive != v.(bool) {
			continue
		}
		if v, ok := filter["station_id"]; ok && p.StationID != v.(primitive.ObjectID) {
			continue
		}
		if v, ok := filter["days"]; ok {
			found := false
			for _, d := range p.Days {
				if d == v.(int) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	sortByStart(out)
	return out, int64(len(out)), nil
}

func (s *fakeProgramRepo) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	p, ok := s.programs[id]
	if !ok {
		return nil
	}
	if v, ok := update["station_id"]; ok {
		p.StationID = v.(primitive.ObjectID)
	}
	if v, ok := update["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := update["slug"]; ok {
		p.Slug = v.(string)
	}
	if v, ok := update["days"]; ok {
		p.Days = v.([]int)
	}
	if v, ok := update["start_time"]; ok {
		p.StartTime = v.(string)
	}
	if v, ok := update["end_time"]; ok {
		p.EndTime = v.(string)
	}
	if v, ok := update["is_active"]; ok {
		p.IsActive = v.(bool)
	}
	if v, ok := update["description"]; ok {
		p.Description = v.(string)
	}
	if v, ok := update["duration_minutes"]; ok {
		p.DurationMinutes = v.(*int)
	}
	if v, ok := update["image_media_id"]; ok {
		p.ImageMediaID = v.(*primitive.ObjectID)
	}
	return nil
}

func (s *fakeProgramRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(s.programs, id)
	return nil
}

func (s *fakeProgramRepo) FindActive(_ context.Context, stationID *primitive.ObjectID) ([]*model.Program, error) {
	var out []*model.Program
	for _, p := range s.programs {
		if !p.IsActive {
			continue
		}
		if stationID != nil && p.StationID != *stationID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sortByStart(out)
	return out, nil
}

func (s *fakeProgramRepo) FindActiveByDay(_ context.Context, day int, stationID *primitive.ObjectID) ([]*model.Program, error) {
	all, _ := s.FindActive(context.Background(), stationID)
	var out []*model.Program
	for _, p := range all {
		for _, d := range p.Days {
			if d == day {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeProgramRepo) FindStationPrograms(_ context.Context, stationID primitive.ObjectID, activeOnly bool) ([]*model.Program, error) {
	var out []*model.Program
	for _, p := range s.programs {
		if p.StationID != stationID {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sortByStart(out)
	return out, nil
}

func (s *fakeProgramRepo) CountByImageMedia(_ context.Context, mediaID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range s.programs {
		if p.ImageMediaID != nil && *p.ImageMediaID == mediaID {
			n++
		}
	}
	return n, nil
}

func (s *fakeProgramRepo) CountByStation(_ context.Context, stationID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range s.programs {
		if p.StationID == stationID {
			n++
		}
	}
	return n, nil
}

func sortByStart(programs []*model.Program) {
	sort.SliceStable(programs, func(i, j int) bool {
		return programs[i].StartTime < programs[j].StartTime
	})
}

type fakeStationRepo struct {
	stations map[primitive.ObjectID]*model.Station
}

func newFakeStationRepo() *fakeStationRepo {
	return &fakeStationRepo{stations: make(map[primitive.ObjectID]*model.Station)}
}

func (s *fakeStationRepo) add(station *model.Station) primitive.ObjectID {
	id := primitive.NewObjectID()
	station.ID = id
	s.stations[id] = station
	return id
}

func (s *fakeStationRepo) Insert(_ context.Context, station *model.Station) (primitive.ObjectID, error) {
	cp := *station
	return s.add(&cp), nil
}

func (s *fakeStationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Station, error) {
	st, ok := s.stations[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *fakeStationRepo) FindBySlug(_ context.Context, slug string) (*model.Station, error) {
	for _, st := range s.stations {
		if strings.EqualFold(st.Slug, slug) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStationRepo) List(_ context.Context, _ bson.M, _ repository.ListQuery) ([]*model.Station, int64, error) {
	var out []*model.Station
	for _, st := range s.stations {
		cp := *st
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStationRepo) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	st, ok := s.stations[id]
	if !ok {
		return nil
	}
	if v, ok := update["name"]; ok {
		st.Name = v.(string)
	}
	if v, ok := update["slug"]; ok {
		st.Slug = v.(string)
	}
	if v, ok := update["status"]; ok {
		st.Status = v.(string)
	}
	if v, ok := update["logo_media_id"]; ok {
		st.LogoMediaID = v.(*primitive.ObjectID)
	}
	return nil
}

func (s *fakeStationRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(s.stations, id)
	return nil
}

func (s *fakeStationRepo) CountByLogoMedia(_ context.Context, mediaID primitive.ObjectID) (int64, error) {
	var n int64
	for _, st := range s.stations {
		if st.LogoMediaID != nil && *st.LogoMediaID == mediaID {
			n++
		}
	}
	return n, nil
}

type fakeJockRepo struct {
	jocks map[primitive.ObjectID]*model.Jock
}

func newFakeJockRepo() *fakeJockRepo {
	return &fakeJockRepo{jocks: make(map[primitive.ObjectID]*model.Jock)}
}

func (s *fakeJockRepo) Insert(_ context.Context, jock *model.Jock) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *jock
	cp.ID = id
	s.jocks[id] = &cp
	return id, nil
}

func (s *fakeJockRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Jock, error) {
	j, ok := s.jocks[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (s *fakeJockRepo) List(_ context.Context, _ bson.M, _ repository.ListQuery) ([]*model.Jock, int64, error) {
	var out []*model.Jock
	for _, j := range s.jocks {
		cp := *j
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *fakeJockRepo) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	j, ok := s.jocks[id]
	if !ok {
		return nil
	}
	if v, ok := update["name"]; ok {
		j.Name = v.(string)
	}
	if v, ok := update["image_media_id"]; ok {
		j.ImageMediaID = v.(*primitive.ObjectID)
	}
	return nil
}

func (s *fakeJockRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(s.jocks, id)
	return nil
}

func (s *fakeJockRepo) CountByImageMedia(_ context.Context, mediaID primitive.ObjectID) (int64, error) {
	var n int64
	for _, j := range s.jocks {
		if j.ImageMediaID != nil && *j.ImageMediaID == mediaID {
			n++
		}
	}
	return n, nil
}

type fakeMediaRepo struct {
	medias    map[primitive.ObjectID]*model.Media
	insertErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{medias: make(map[primitive.ObjectID]*model.Media)}
}

func (s *fakeMediaRepo) Insert(_ context.Context, media *model.Media) (primitive.ObjectID, error) {
	if s.insertErr != nil {
		return primitive.NilObjectID, s.insertErr
	}
	id := primitive.NewObjectID()
	cp := *media
	cp.ID = id
	s.medias[id] = &cp
	return id, nil
}

func (s *fakeMediaRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Media, error) {
	m, ok := s.medias[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMediaRepo) List(_ context.Context, _ bson.M, _ repository.ListQuery) ([]*model.Media, int64, error) {
	var out []*model.Media
	for _, m := range s.medias {
		cp := *m
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *fakeMediaRepo) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	m, ok := s.medias[id]
	if !ok {
		return nil
	}
	if v, ok := update["alt"]; ok {
		m.Alt = v.(string)
	}
	if v, ok := update["caption"]; ok {
		m.Caption = v.(string)
	}
	return nil
}

func (s *fakeMediaRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(s.medias, id)
	return nil
}

// stubStore 记录 Put/Delete 调用的对象存储替身
type stubStore struct {
	objects   map[string][]byte // bucket/key → data
	putErr    error
	deleteErr error
	deleted   []string
}

func newStubStore() *stubStore {
	return &stubStore{objects: make(map[string][]byte)}
}

func (s *stubStore) Put(_ context.Context, bucket, key string, reader io.Reader, _ int64, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[bucket+"/"+key] = data
	return nil
}

func (s *stubStore) Delete(_ context.Context, bucket, key string) error {
	s.deleted = append(s.deleted, bucket+"/"+key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, bucket+"/"+key)
	return nil
}

func (s *stubStore) PublicURL(bucket, key string) string {
	return "http://store.local/" + bucket + "/" + key
}

func (s *stubStore) DefaultBucket() string {
	return "airwave"
}

// stubMediaSvc 供节目/电台/主持人服务测试使用
type stubMediaSvc struct {
	removed []primitive.ObjectID
}

func (s *stubMediaSvc) IngestImage(_ context.Context, _ []byte, _ string, _ IngestOptions) (*model.Media, error) {
	return nil, nil
}

func (s *stubMediaSvc) Get(_ context.Context, _ string) (*dto.MediaDTO, error) {
	return nil, nil
}

func (s *stubMediaSvc) List(_ context.Context, _ *dto.ListQueryDTO) ([]*dto.MediaDTO, int64, error) {
	return nil, 0, nil
}

func (s *stubMediaSvc) UpdateMeta(_ context.Context, _ string, _ *dto.UpdateMediaDTO) (*dto.MediaDTO, error) {
	return nil, nil
}

func (s *stubMediaSvc) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *stubMediaSvc) Remove(_ context.Context, id primitive.ObjectID) error {
	s.removed = append(s.removed, id)
	return nil
}

func (s *stubMediaSvc) URLFor(_ context.Context, _ *primitive.ObjectID) string {
	return ""
}
