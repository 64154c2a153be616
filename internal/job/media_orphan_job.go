package job

import (
	"Airwave/internal/pkg/consts"
	"Airwave/internal/pkg/redis"
	"Airwave/internal/service"
	"context"
	log "log/slog"
	"strings"
)

// MediaOrphanJob 回收删除失败遗留的对象存储 blob。
// 集合成员格式为 "bucket/key"，删除成功后才从集合移除。
type MediaOrphanJob struct {
	store service.ObjectStore
}

func NewMediaOrphanJob(store service.ObjectStore) *MediaOrphanJob {
	return &MediaOrphanJob{store: store}
}

func (s *MediaOrphanJob) Run() {
	ctx := context.Background()
	log.Info("start media orphan sweep")

	members, err := redis.SMembers(ctx, consts.MediaOrphanKey)
	if err != nil {
		log.Error("failed to read orphan key set", "err", err)
		return
	}

	count := 0
	for _, member := range members {
		bucket, key, ok := strings.Cut(member, "/")
		if !ok || bucket == "" || key == "" {
			log.Warn("invalid orphan member, dropping", "member", member)
			_ = redis.SRem(ctx, consts.MediaOrphanKey, member)
			continue
		}

		if err = s.store.Delete(ctx, bucket, key); err != nil {
			log.Error("failed to delete orphan blob", "bucket", bucket, "key", key, "err", err)
			continue
		}

		if err = redis.SRem(ctx, consts.MediaOrphanKey, member); err != nil {
			log.Error("failed to remove orphan member from redis", "member", member, "err", err)
			continue
		}
		count++
	}

	if count > 0 {
		log.Info("media orphan sweep finished", "reclaimed_count", count)
	}
}
