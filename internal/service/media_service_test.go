package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"Airwave/internal/api/dto"
	"Airwave/internal/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mediaFixture struct {
	svc         MediaService
	mediaRepo   *fakeMediaRepo
	programRepo *fakeProgramRepo
	stationRepo *fakeStationRepo
	jockRepo    *fakeJockRepo
	store       *stubStore
}

func newMediaFixture(t *testing.T) *mediaFixture {
	t.Helper()
	f := &mediaFixture{
		mediaRepo:   newFakeMediaRepo(),
		programRepo: newFakeProgramRepo(),
		stationRepo: newFakeStationRepo(),
		jockRepo:    newFakeJockRepo(),
		store:       newStubStore(),
	}
	f.svc = NewMediaService(f.mediaRepo, f.programRepo, f.stationRepo, f.jockRepo, f.store, MediaConfig{
		KeyPrefix: "staging/",
		Quiet:     true,
	})
	return f
}

// pngBytes 生成一张纯色测试图
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIngestImage(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 64, 64), "Show Cover.png", IngestOptions{Folder: "programs"})
	require.NoError(t, err)
	require.False(t, media.ID.IsZero())
	require.Equal(t, "airwave", media.Bucket)
	require.Equal(t, "image/jpeg", media.MimeType)

	// key 布局: {前缀}{目录}/{uuid}-{清理后的文件名}.{扩展名}
	require.True(t, strings.HasPrefix(media.Key, "staging/programs/"))
	require.True(t, strings.HasSuffix(media.Key, "-show-cover.jpg"))
	require.Equal(t, "http://store.local/airwave/"+media.Key, media.URL)

	// blob 已写入对象存储，记录已入库
	require.Contains(t, f.store.objects, "airwave/"+media.Key)
	stored, err := f.mediaRepo.FindByID(ctx, media.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, int64(len(f.store.objects["airwave/"+media.Key])), stored.Size)
}

func TestIngestImagePassthrough(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	media, err := f.svc.IngestImage(ctx, svg, "logo.svg", IngestOptions{Folder: "stations"})
	require.NoError(t, err)
	require.Equal(t, "image/svg+xml", media.MimeType)
	require.True(t, strings.HasSuffix(media.Key, ".svg"))
	require.Equal(t, svg, f.store.objects["airwave/"+media.Key])
	require.Equal(t, int64(len(svg)), media.Size)
}

func TestIngestImageExtensionlessKey(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, []byte("raw blob"), "cover", IngestOptions{Folder: "programs"})
	require.NoError(t, err)

	// 无扩展名时 key 不带尾点
	require.False(t, strings.HasSuffix(media.Key, "."))
	require.True(t, strings.HasSuffix(media.Key, "-cover"))
}

func TestIngestImageCompensatesOnInsertFailure(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()
	f.mediaRepo.insertErr = errors.New("db down")

	_, err := f.svc.IngestImage(ctx, pngBytes(t, 32, 32), "cover.png", IngestOptions{Folder: "programs"})
	require.Error(t, err)

	// 刚上传的 blob 已被补偿删除
	require.Empty(t, f.store.objects)
	require.Len(t, f.store.deleted, 1)
}

func TestIngestImagePutFailure(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()
	f.store.putErr = errors.New("store down")

	_, err := f.svc.IngestImage(ctx, pngBytes(t, 32, 32), "cover.png", IngestOptions{Folder: "programs"})
	require.Error(t, err)
	require.Empty(t, f.mediaRepo.medias)
}

func TestMediaDelete(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 16, 16), "cover.png", IngestOptions{Folder: "programs"})
	require.NoError(t, err)

	t.Run("referenced media is refused", func(t *testing.T) {
		id := media.ID
		programID, err := f.programRepo.Insert(ctx, &model.Program{
			Name: "Show", Slug: "show", ImageMediaID: &id,
			Days: []int{1}, StartTime: "06:00:00", EndTime: "07:00:00", IsActive: true,
		})
		require.NoError(t, err)

		require.ErrorIs(t, f.svc.Delete(ctx, media.ID.Hex()), ErrMediaReferenced)

		require.NoError(t, f.programRepo.DeleteByID(ctx, programID))
	})

	t.Run("unreferenced media deletes record and blob", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, media.ID.Hex()))

		stored, err := f.mediaRepo.FindByID(ctx, media.ID)
		require.NoError(t, err)
		require.Nil(t, stored)
		require.NotContains(t, f.store.objects, "airwave/"+media.Key)
	})

	t.Run("missing media", func(t *testing.T) {
		require.ErrorIs(t, f.svc.Delete(ctx, primitive.NewObjectID().Hex()), ErrMediaNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		require.ErrorIs(t, f.svc.Delete(ctx, "bad"), ErrInvalidID)
	})
}

func TestMediaDeleteRefusedByStationReference(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 16, 16), "logo.png", IngestOptions{Folder: "stations"})
	require.NoError(t, err)

	id := media.ID
	_, err = f.stationRepo.Insert(ctx, &model.Station{Name: "Radyo", Slug: "radyo", LogoMediaID: &id})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Delete(ctx, media.ID.Hex()), ErrMediaReferenced)
}

func TestMediaRecordSurvivesBlobDeleteFailure(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 16, 16), "cover.png", IngestOptions{Folder: "programs"})
	require.NoError(t, err)

	// blob 删除失败不阻塞删除流程，遗留对象交由兜底回收
	f.store.deleteErr = errors.New("store down")
	require.NoError(t, f.svc.Delete(ctx, media.ID.Hex()))

	stored, err := f.mediaRepo.FindByID(ctx, media.ID)
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestMediaRemoveMissingIsNoop(t *testing.T) {
	f := newMediaFixture(t)
	require.NoError(t, f.svc.Remove(context.Background(), primitive.NewObjectID()))
}

func TestMediaUpdateMeta(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 16, 16), "cover.png", IngestOptions{Folder: "programs"})
	require.NoError(t, err)

	alt := "station cover art"
	updated, err := f.svc.UpdateMeta(ctx, media.ID.Hex(), &dto.UpdateMediaDTO{Alt: &alt})
	require.NoError(t, err)
	require.Equal(t, alt, updated.Alt)

	stored, err := f.mediaRepo.FindByID(ctx, media.ID)
	require.NoError(t, err)
	require.Equal(t, alt, stored.Alt)
}

func TestURLFor(t *testing.T) {
	f := newMediaFixture(t)
	ctx := context.Background()

	require.Empty(t, f.svc.URLFor(ctx, nil))

	missing := primitive.NewObjectID()
	require.Empty(t, f.svc.URLFor(ctx, &missing))

	media, err := f.svc.IngestImage(ctx, pngBytes(t, 16, 16), "cover.png", IngestOptions{Folder: "programs"})
	require.NoError(t, err)
	require.Equal(t, media.URL, f.svc.URLFor(ctx, &media.ID))
}
