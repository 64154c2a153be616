package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 通过嗅探文件头识别内容类型，不信任客户端声明。
// 读取后会将 Seeker 复位到起始位置。
func GetSafeContentType(r io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}
