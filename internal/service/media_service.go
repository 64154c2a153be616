package service

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/pkg/consts"
	"Airwave/internal/pkg/redis"
	"Airwave/internal/pkg/transcode"
	"Airwave/internal/pkg/util"
	"Airwave/internal/repository"
	"bytes"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectStore 对象存储网关
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	DefaultBucket() string
}

// IngestOptions 图片入库参数
type IngestOptions struct {
	Folder    string // 对象 key 的逻辑目录
	Quality   int    // 1-100，0 取默认
	MaxWidth  int
	MaxHeight int
	Bucket    string // 为空时用配置的默认桶
}

// MediaConfig 媒体核心的环境配置
type MediaConfig struct {
	KeyPrefix string // 非生产环境为 "staging/"
	Quiet     bool   // 生产环境下不打压缩日志
}

type MediaService interface {
	// IngestImage 压缩并上传图片，落 Media 记录，返回完整记录
	IngestImage(ctx context.Context, data []byte, originalName string, opts IngestOptions) (*model.Media, error)
	Get(ctx context.Context, id string) (*dto.MediaDTO, error)
	List(ctx context.Context, q *dto.ListQueryDTO) ([]*dto.MediaDTO, int64, error)
	UpdateMeta(ctx context.Context, id string, d *dto.UpdateMediaDTO) (*dto.MediaDTO, error)
	// Delete 管理端删除：存在入站引用时拒绝，blob 与记录一并删除
	Delete(ctx context.Context, id string) error
	// Remove 替换场景的内部回收，不做引用检查
	Remove(ctx context.Context, id primitive.ObjectID) error
	// URLFor 解析引用的公共 URL，失败时返回空串
	URLFor(ctx context.Context, id *primitive.ObjectID) string
}

type mediaServiceImpl struct {
	mediaRepo   repository.MediaRepo
	programRepo repository.ProgramRepo
	stationRepo repository.StationRepo
	jockRepo    repository.JockRepo
	store       ObjectStore
	cfg         MediaConfig
}

func NewMediaService(
	mediaRepo repository.MediaRepo,
	programRepo repository.ProgramRepo,
	stationRepo repository.StationRepo,
	jockRepo repository.JockRepo,
	store ObjectStore,
	cfg MediaConfig,
) MediaService {
	return &mediaServiceImpl{
		mediaRepo:   mediaRepo,
		programRepo: programRepo,
		stationRepo: stationRepo,
		jockRepo:    jockRepo,
		store:       store,
		cfg:         cfg,
	}
}

// IngestImage 压缩 → 上传 blob → 插入记录。
// 记录插入失败时尽力删除刚上传的对象；删除也失败则把 key 记入兜底集合等待定时回收。
func (s *mediaServiceImpl) IngestImage(ctx context.Context, data []byte, originalName string, opts IngestOptions) (*model.Media, error) {
	res, err := transcode.Compress(data, originalName, transcode.Options{
		Quality:   opts.Quality,
		MaxWidth:  opts.MaxWidth,
		MaxHeight: opts.MaxHeight,
	})
	if err != nil {
		return nil, err
	}

	if !s.cfg.Quiet && res.CompressedSize != res.OriginalSize {
		log.InfoContext(ctx, "image compressed",
			"file", originalName,
			"originalSize", res.OriginalSize,
			"compressedSize", res.CompressedSize,
			"ratio", fmt.Sprintf("%.2f", res.Ratio),
		)
	}

	bucket := opts.Bucket
	if bucket == "" {
		bucket = s.store.DefaultBucket()
	}
	key := s.buildKey(opts.Folder, originalName, res.Ext)

	if err = s.store.Put(ctx, bucket, key, bytes.NewReader(res.Data), int64(len(res.Data)), res.MimeType); err != nil {
		return nil, err
	}

	media := &model.Media{
		OriginalName: originalName,
		Key:          key,
		Bucket:       bucket,
		URL:          s.store.PublicURL(bucket, key),
		MimeType:     res.MimeType,
		Size:         int64(len(res.Data)),
		CreatedAt:    time.Now(),
	}

	id, err := s.mediaRepo.Insert(ctx, media)
	if err != nil {
		s.reapOrphan(ctx, bucket, key)
		return nil, err
	}
	media.ID = id

	return media, nil
}

func (s *mediaServiceImpl) Get(ctx context.Context, id string) (*dto.MediaDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	return toMediaDTO(media), nil
}

func (s *mediaServiceImpl) List(ctx context.Context, q *dto.ListQueryDTO) ([]*dto.MediaDTO, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter = repository.RegexSearch("original_name", q.Search)
	}

	medias, total, err := s.mediaRepo.List(ctx, filter, repository.ListQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.MediaDTO, 0, len(medias))
	for _, m := range medias {
		out = append(out, toMediaDTO(m))
	}
	return out, total, nil
}

func (s *mediaServiceImpl) UpdateMeta(ctx context.Context, id string, d *dto.UpdateMediaDTO) (*dto.MediaDTO, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}

	update := bson.M{}
	if d.Alt != nil {
		media.Alt = *d.Alt
		update["alt"] = *d.Alt
	}
	if d.Caption != nil {
		media.Caption = *d.Caption
		update["caption"] = *d.Caption
	}
	if len(update) > 0 {
		if err = s.mediaRepo.UpdateByID(ctx, oid, update); err != nil {
			return nil, err
		}
	}
	return toMediaDTO(media), nil
}

// Delete 先检查入站引用（节目/电台/主持人），有引用则 409
func (s *mediaServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	media, err := s.mediaRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}

	referenced, err := s.isReferenced(ctx, oid)
	if err != nil {
		return err
	}
	if referenced {
		return ErrMediaReferenced
	}

	return s.deleteBoth(ctx, media)
}

func (s *mediaServiceImpl) Remove(ctx context.Context, id primitive.ObjectID) error {
	media, err := s.mediaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return nil
	}
	return s.deleteBoth(ctx, media)
}

func (s *mediaServiceImpl) URLFor(ctx context.Context, id *primitive.ObjectID) string {
	if id == nil {
		return ""
	}
	media, err := s.mediaRepo.FindByID(ctx, *id)
	if err != nil || media == nil {
		return ""
	}
	return media.URL
}

// deleteBoth 先删记录再删 blob；blob 删除失败进兜底集合，不影响结果
func (s *mediaServiceImpl) deleteBoth(ctx context.Context, media *model.Media) error {
	if err := s.mediaRepo.DeleteByID(ctx, media.ID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, media.Bucket, media.Key); err != nil {
		s.recordOrphan(ctx, media.Bucket, media.Key, err)
	}
	return nil
}

func (s *mediaServiceImpl) isReferenced(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if n, err := s.programRepo.CountByImageMedia(ctx, id); err != nil || n > 0 {
		return n > 0, err
	}
	if n, err := s.stationRepo.CountByLogoMedia(ctx, id); err != nil || n > 0 {
		return n > 0, err
	}
	n, err := s.jockRepo.CountByImageMedia(ctx, id)
	return n > 0, err
}

// reapOrphan 补偿删除刚上传的对象
func (s *mediaServiceImpl) reapOrphan(ctx context.Context, bucket, key string) {
	if err := s.store.Delete(ctx, bucket, key); err != nil {
		s.recordOrphan(ctx, bucket, key, err)
	}
}

func (s *mediaServiceImpl) recordOrphan(ctx context.Context, bucket, key string, cause error) {
	log.ErrorContext(ctx, "orphan blob left in object store",
		"bucket", bucket, "key", key, "err", cause)
	if redis.Rdb != nil {
		if err := redis.SAdd(ctx, consts.MediaOrphanKey, bucket+"/"+key); err != nil {
			log.ErrorContext(ctx, "failed to record orphan key", "key", key, "err", err)
		}
	}
}

func (s *mediaServiceImpl) buildKey(folder, originalName, ext string) string {
	base := util.SanitizeBaseName(originalName)
	key := fmt.Sprintf("%s%s/%s-%s", s.cfg.KeyPrefix, folder, uuid.NewString(), base)
	if ext != "" {
		key += "." + ext
	}
	return key
}

func toMediaDTO(m *model.Media) *dto.MediaDTO {
	out := &dto.MediaDTO{}
	_ = copier.Copy(out, m)
	out.ID = m.ID.Hex()
	return out
}
