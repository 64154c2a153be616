package minio

import (
	"Airwave/internal/api/config"
	"Airwave/internal/pkg/consts"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Store 对象存储网关，满足 service.ObjectStore 接口
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Put 上传对象，带 Content-Type 与长缓存头
func (s *Store) Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: consts.CacheControlImmutable,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete 删除对象
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL 由 (bucket, key) 推导稳定的公共访问 URL
func (s *Store) PublicURL(bucket, key string) string {
	cfg := config.Cfg.MinIO
	if cfg.PublicBase != "" {
		return fmt.Sprintf("%s/%s/%s", cfg.PublicBase, bucket, key)
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.Endpoint, bucket, key)
}

// DefaultBucket 配置的默认存储桶
func (s *Store) DefaultBucket() string {
	return config.Cfg.MinIO.Bucket
}
