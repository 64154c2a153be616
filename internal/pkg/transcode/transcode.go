package transcode

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

// Options 压缩参数。MaxWidth/MaxHeight 为 0 表示该方向不限制。
type Options struct {
	Quality   int // 1-100，0 取默认 80
	MaxWidth  int
	MaxHeight int
}

// Result 压缩产物与指标
type Result struct {
	Data           []byte
	MimeType       string
	Ext            string
	OriginalSize   int
	CompressedSize int
	Ratio          float64 // (original - compressed) / original
}

const DefaultQuality = 80

// 按扩展名识别为图片的类型
var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {},
	"webp": {}, "tiff": {}, "svg": {}, "avif": {},
}

// 可解码并重编码的子集；svg/avif/webp 保持原样透传
var decodableExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "tiff": {},
}

// http.DetectContentType 的嗅探表能识别的子集。
// svg/avif/tiff 的魔数不在表内，对它们做内容嗅探必然误判为非图片。
var sniffableExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "webp": {},
}

// ExtOf 取小写扩展名（不含点）
func ExtOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// IsImage 按扩展名白名单判断
func IsImage(name string) bool {
	_, ok := imageExts[ExtOf(name)]
	return ok
}

// Sniffable 该扩展名是否可用内容嗅探复核真实类型
func Sniffable(name string) bool {
	_, ok := sniffableExts[ExtOf(name)]
	return ok
}

// Compress 对图片输入执行 解码 → 等比缩放(不放大) → 按质量重编码，
// 非图片或不可解码的图片格式原样透传。纯函数，不触碰任何外部资源。
func Compress(data []byte, originalName string, opts Options) (*Result, error) {
	ext := ExtOf(originalName)
	origSize := len(data)

	if _, ok := decodableExts[ext]; !ok {
		return passthrough(data, ext, origSize), nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW > 0 || maxH > 0 {
		if maxW <= 0 {
			maxW = math.MaxInt32
		}
		if maxH <= 0 {
			maxH = math.MaxInt32
		}
		// Fit 只缩不放，保持宽高比
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	out := buf.Bytes()
	return &Result{
		Data:           out,
		MimeType:       "image/jpeg",
		Ext:            "jpg",
		OriginalSize:   origSize,
		CompressedSize: len(out),
		Ratio:          ratio(origSize, len(out)),
	}, nil
}

func passthrough(data []byte, ext string, origSize int) *Result {
	mime := http.DetectContentType(data)
	switch ext {
	case "svg":
		mime = "image/svg+xml"
	case "avif":
		mime = "image/avif"
	case "webp":
		mime = "image/webp"
	}
	return &Result{
		Data:           data,
		MimeType:       mime,
		Ext:            ext,
		OriginalSize:   origSize,
		CompressedSize: origSize,
		Ratio:          0,
	}
}

func ratio(original, compressed int) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-compressed) / float64(original)
}
