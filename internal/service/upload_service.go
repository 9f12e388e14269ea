package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/util"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	log "log/slog"
)

const (
	MaxImageSize = 10 << 20  // 10MB
	MaxVideoSize = 500 << 20 // 500MB
)

// 基于内容探测的 MIME 白名单
var imageContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var videoContentTypes = map[string]string{
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/x-msvideo": "avi",
	"video/webm":      "webm",
}

type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, category string) (*dto.UploadImageDTO, error)
	UploadVideo(ctx context.Context, file *multipart.FileHeader) (*dto.UploadVideoDTO, error)
	GetUploadCredential(ctx context.Context, fileName string) (*dto.UploadCredentialDTO, error)
}

type UploadServiceImpl struct{}

func NewUploadService() UploadService {
	return &UploadServiceImpl{}
}

func readUpload(file *multipart.FileHeader, maxSize int64) (*bytes.Reader, error) {
	if file == nil {
		return nil, ErrFileRequired
	}
	if file.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}
	return bytes.NewReader(data), nil
}

// UploadImage 校验类型与大小，解码宽高后上传，category 为 notes 或 avatars
func (s *UploadServiceImpl) UploadImage(ctx context.Context, file *multipart.FileHeader, category string) (*dto.UploadImageDTO, error) {
	reader, err := readUpload(file, MaxImageSize)
	if err != nil {
		return nil, err
	}

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, err
	}
	ext, ok := imageContentTypes[contentType]
	if !ok {
		return nil, ErrFileNotSupported
	}

	width, height, err := util.GetImageDimensions(reader)
	if err != nil {
		return nil, ErrFileNotSupported
	}

	if category != "avatars" {
		category = "notes"
	}
	key := util.GenerateObjectKey(config.Cfg.Server.EnvPrefix(), "images/"+category, ext)
	if _, err = minio.UploadFile(ctx, key, reader, reader.Size(), contentType); err != nil {
		log.Error("image upload failed", "key", key, "error", err)
		return nil, err
	}

	return &dto.UploadImageDTO{
		URL:    minio.GetPublicURL(key),
		Width:  width,
		Height: height,
	}, nil
}

// UploadVideo 服务端不解析视频元数据，宽高与时长返回 null
func (s *UploadServiceImpl) UploadVideo(ctx context.Context, file *multipart.FileHeader) (*dto.UploadVideoDTO, error) {
	reader, err := readUpload(file, MaxVideoSize)
	if err != nil {
		return nil, err
	}

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, err
	}
	ext, ok := videoContentTypes[contentType]
	if !ok {
		return nil, ErrFileNotSupported
	}

	key := util.GenerateObjectKey(config.Cfg.Server.EnvPrefix(), "videos/notes", ext)
	if _, err = minio.UploadFile(ctx, key, reader, reader.Size(), contentType); err != nil {
		log.Error("video upload failed", "key", key, "error", err)
		return nil, err
	}

	return &dto.UploadVideoDTO{
		URL: minio.GetPublicURL(key),
	}, nil
}

// GetUploadCredential 只返回目标地址与 key，不签发临时密钥
func (s *UploadServiceImpl) GetUploadCredential(_ context.Context, fileName string) (*dto.UploadCredentialDTO, error) {
	if fileName == "" {
		return nil, ErrFileRequired
	}

	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return nil, ErrFileNotSupported
	}

	key := util.GenerateObjectKey(config.Cfg.Server.EnvPrefix(), "images/notes", ext)
	return &dto.UploadCredentialDTO{
		UploadURL: minio.GetPublicURL(key),
		Key:       key,
	}, nil
}
