package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到存储桶，返回对象 key
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// ListKeys 列出指定前缀下的所有对象 key，分页由客户端内部完成
func ListKeys(ctx context.Context, prefix string) ([]string, error) {
	if Client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	var keys []string
	for obj := range Client.ListObjects(ctx, Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// RemoveKeys 批量删除对象，单批最多 1000 个
func RemoveKeys(ctx context.Context, keys []string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	const batchSize = 1000
	for i := 0; i < len(keys); i += batchSize {
		end := i + batchSize
		if end > len(keys) {
			end = len(keys)
		}

		objectsCh := make(chan minio.ObjectInfo, end-i)
		for _, key := range keys[i:end] {
			objectsCh <- minio.ObjectInfo{Key: key}
		}
		close(objectsCh)

		for rErr := range Client.RemoveObjects(ctx, Bucket, objectsCh, minio.RemoveObjectsOptions{}) {
			if rErr.Err != nil {
				return fmt.Errorf("failed to remove object %s: %w", rErr.ObjectName, rErr.Err)
			}
		}
	}
	return nil
}

// GetPublicURL 获取对象的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	endpoint := cfg.PublicEndpoint
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, cfg.Bucket, objectName)
}
