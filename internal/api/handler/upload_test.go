package handler

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Airwave/internal/api/config"
	"Airwave/internal/api/dto"
	"Airwave/internal/model"
	"Airwave/internal/service"
)

type uploadStubMedia struct {
	ingested  []string
	ingestErr error
}

func (s *uploadStubMedia) IngestImage(_ context.Context, _ []byte, originalName string, _ service.IngestOptions) (*model.Media, error) {
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	s.ingested = append(s.ingested, originalName)
	return &model.Media{ID: primitive.NewObjectID(), OriginalName: originalName}, nil
}

func (s *uploadStubMedia) Get(_ context.Context, _ string) (*dto.MediaDTO, error) {
	return nil, service.ErrMediaNotFound
}

func (s *uploadStubMedia) List(_ context.Context, _ *dto.ListQueryDTO) ([]*dto.MediaDTO, int64, error) {
	return nil, 0, nil
}

func (s *uploadStubMedia) UpdateMeta(_ context.Context, _ string, _ *dto.UpdateMediaDTO) (*dto.MediaDTO, error) {
	return nil, service.ErrMediaNotFound
}

func (s *uploadStubMedia) Delete(_ context.Context, _ string) error { return nil }

func (s *uploadStubMedia) Remove(_ context.Context, _ primitive.ObjectID) error { return nil }

func (s *uploadStubMedia) URLFor(_ context.Context, _ *primitive.ObjectID) string { return "" }

func uploadPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func uploadContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

// tempUploadFiles 枚举当前遗留的上传临时文件
func tempUploadFiles(t *testing.T) map[string]struct{} {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "airwave-upload-*"))
	require.NoError(t, err)
	set := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		set[m] = struct{}{}
	}
	return set
}

func requireNoNewTempFiles(t *testing.T, before map[string]struct{}) {
	t.Helper()
	for m := range tempUploadFiles(t) {
		_, existed := before[m]
		require.True(t, existed, "leftover temp upload file: %s", m)
	}
}

func withUploadConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	prev := config.Cfg
	config.Cfg = cfg
	t.Cleanup(func() { config.Cfg = prev })
}

func TestIngestUploadedImage(t *testing.T) {
	t.Run("ingests a png and cleans up the temp file", func(t *testing.T) {
		before := tempUploadFiles(t)
		svc := &uploadStubMedia{}
		c := uploadContext(t, "image", "cover.png", uploadPNG(t))

		id, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{Folder: "stations"})
		require.NoError(t, err)
		require.NotNil(t, id)
		require.Equal(t, []string{"cover.png"}, svc.ingested)
		requireNoNewTempFiles(t, before)
	})

	t.Run("cleans up the temp file when ingestion fails", func(t *testing.T) {
		before := tempUploadFiles(t)
		svc := &uploadStubMedia{ingestErr: errors.New("object store down")}
		c := uploadContext(t, "image", "cover.png", uploadPNG(t))

		id, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{})
		require.Error(t, err)
		require.Nil(t, id)
		requireNoNewTempFiles(t, before)
	})

	t.Run("missing field is not an error", func(t *testing.T) {
		svc := &uploadStubMedia{}
		c := uploadContext(t, "image", "", nil)

		id, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{})
		require.NoError(t, err)
		require.Nil(t, id)
		require.Empty(t, svc.ingested)
	})

	t.Run("rejects files above the configured size cap", func(t *testing.T) {
		withUploadConfig(t, &config.Config{Upload: config.UploadConfig{MaxSizeMB: 1}})
		svc := &uploadStubMedia{}
		big := append(uploadPNG(t), bytes.Repeat([]byte{0}, 1<<20)...)
		c := uploadContext(t, "image", "huge.png", big)

		_, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{})
		require.ErrorIs(t, err, service.ErrFileTooLarge)
		require.Empty(t, svc.ingested)
	})

	t.Run("rejects non-image extensions", func(t *testing.T) {
		svc := &uploadStubMedia{}
		c := uploadContext(t, "image", "notes.txt", []byte("plain text"))

		_, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{})
		require.ErrorIs(t, err, service.ErrNotImage)
		require.Empty(t, svc.ingested)
	})

	t.Run("rejects image extensions with non-image content", func(t *testing.T) {
		svc := &uploadStubMedia{}
		c := uploadContext(t, "image", "fake.png", []byte("definitely not a png"))

		_, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{})
		require.ErrorIs(t, err, service.ErrNotImage)
		require.Empty(t, svc.ingested)
	})

	t.Run("accepts svg despite being unsniffable", func(t *testing.T) {
		before := tempUploadFiles(t)
		svc := &uploadStubMedia{}
		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`)
		c := uploadContext(t, "image", "logo.svg", svg)

		id, err := ingestUploadedImage(c, svc, "image", service.IngestOptions{Folder: "stations"})
		require.NoError(t, err)
		require.NotNil(t, id)
		require.Equal(t, []string{"logo.svg"}, svc.ingested)
		requireNoNewTempFiles(t, before)
	})
}
