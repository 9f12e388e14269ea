package util

import (
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const randomChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GetSafeContentType 基于文件内容探测 MIME 类型，而非信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// GetImageDimensions 解码图片并返回宽高
func GetImageDimensions(reader io.ReadSeeker) (int, int, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return 0, 0, err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// GenerateObjectKey 生成对象存储 key：
// {env}/uploads/{category}/{yyyyMM}/{ddHHmmss}_{random6}.{ext}
func GenerateObjectKey(envPrefix, category, ext string) string {
	now := time.Now()
	yearMonth := now.Format("200601")
	dayTime := now.Format("02150405")

	b := make([]byte, 6)
	for i := range b {
		b[i] = randomChars[rand.Intn(len(randomChars))]
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%s/uploads/%s/%s/%s_%s.%s", envPrefix, category, yearMonth, dayTime, string(b), ext)
}

// ExtractObjectKey 从公共访问 URL 中解析对象 key，解析失败返回空串
func ExtractObjectKey(rawURL, bucket string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimPrefix(u.Path, "/")
	if bucket != "" && strings.HasPrefix(path, bucket+"/") {
		return strings.TrimPrefix(path, bucket+"/")
	}
	return path
}
