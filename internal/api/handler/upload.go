package handler

import (
	"Airwave/internal/api/config"
	"Airwave/internal/pkg/consts"
	"Airwave/internal/pkg/transcode"
	"Airwave/internal/pkg/util"
	"Airwave/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ingestUploadedImage 处理可选的图片上传字段：大小与类型校验 → 临时文件 →
// 交给媒体核心入库。字段缺失返回 (nil, nil)。临时文件在所有退出路径上清理，
// 清理失败仅记日志不影响结果。
func ingestUploadedImage(c *gin.Context, mediaSvc service.MediaService, field string, opts service.IngestOptions) (*primitive.ObjectID, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, service.ErrValidation
	}

	maxSize := int64(consts.MaxUploadSize)
	if config.Cfg != nil && config.Cfg.Upload.MaxSizeMB > 0 {
		maxSize = int64(config.Cfg.Upload.MaxSizeMB) << 20
	}
	if file.Size > maxSize {
		return nil, service.ErrFileTooLarge
	}

	if !transcode.IsImage(file.Filename) {
		return nil, service.ErrNotImage
	}

	// svg/avif/tiff 不在嗅探表内，只对嗅探可识别的格式做内容复核
	if transcode.Sniffable(file.Filename) {
		reader, err := file.Open()
		if err != nil {
			return nil, service.ErrValidation
		}
		contentType, err := util.GetSafeContentType(reader)
		_ = reader.Close()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
			return nil, service.ErrNotImage
		}
	}

	tmpPath := filepath.Join(os.TempDir(), "airwave-upload-"+uuid.NewString())
	if err = c.SaveUploadedFile(file, tmpPath); err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.WarnContext(c.Request.Context(), "failed to remove temp upload file",
				"path", tmpPath, "err", err)
		}
	}()

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, err
	}

	if opts.Quality == 0 && config.Cfg != nil {
		opts.Quality = config.Cfg.Upload.DefaultQuality
	}

	media, err := mediaSvc.IngestImage(c.Request.Context(), data, file.Filename, opts)
	if err != nil {
		return nil, err
	}
	return &media.ID, nil
}
