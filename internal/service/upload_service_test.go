package service

import (
	"Inkstone/internal/api/config"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeaderWith 通过真实的 multipart 解析构造 FileHeader，Open 可用
func fileHeaderWith(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestUploadImage_FileRequired(t *testing.T) {
	svc := NewUploadService()
	_, err := svc.UploadImage(context.Background(), nil, "notes")
	assert.ErrorIs(t, err, ErrFileRequired)
}

func TestUploadImage_TooLarge(t *testing.T) {
	svc := NewUploadService()

	// 20MB 的声明大小在读取内容前就被拒绝
	file := &multipart.FileHeader{Filename: "big.jpg", Size: 20 << 20}
	_, err := svc.UploadImage(context.Background(), file, "notes")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadImage_NotAnImage(t *testing.T) {
	svc := NewUploadService()

	// 扩展名伪装成图片，按内容探测仍被拒绝
	file := fileHeaderWith(t, "fake.png", []byte("hello, this is plain text"))
	_, err := svc.UploadImage(context.Background(), file, "notes")
	assert.ErrorIs(t, err, ErrFileNotSupported)
}

func TestUploadImage_Undecodable(t *testing.T) {
	svc := NewUploadService()

	// JPEG 魔数通过 MIME 白名单，但解码宽高失败
	file := fileHeaderWith(t, "broken.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10})
	_, err := svc.UploadImage(context.Background(), file, "notes")
	assert.ErrorIs(t, err, ErrFileNotSupported)
}

func TestUploadVideo_TooLarge(t *testing.T) {
	svc := NewUploadService()

	file := &multipart.FileHeader{Filename: "big.mp4", Size: MaxVideoSize + 1}
	_, err := svc.UploadVideo(context.Background(), file)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadVideo_NotAVideo(t *testing.T) {
	svc := NewUploadService()

	file := fileHeaderWith(t, "clip.mp4", []byte("not a video at all"))
	_, err := svc.UploadVideo(context.Background(), file)
	assert.ErrorIs(t, err, ErrFileNotSupported)
}

func TestGetUploadCredential(t *testing.T) {
	saved := config.Cfg
	config.Cfg = &config.Config{
		Server: config.ServerConfig{Env: "dev"},
		MinIO:  config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "inkstone-media"},
	}
	defer func() { config.Cfg = saved }()

	svc := NewUploadService()

	_, err := svc.GetUploadCredential(context.Background(), "")
	assert.ErrorIs(t, err, ErrFileRequired)

	_, err = svc.GetUploadCredential(context.Background(), "noext")
	assert.ErrorIs(t, err, ErrFileNotSupported)

	cred, err := svc.GetUploadCredential(context.Background(), "photo.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cred.Key, "dev/uploads/images/notes/"))
	assert.True(t, strings.HasSuffix(cred.Key, ".png"))
	assert.Contains(t, cred.UploadURL, "inkstone-media/"+cred.Key)
}
