package job

import (
	"Inkstone/internal/api/config"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaRefRepo struct {
	urls []string
	err  error
}

func (f *fakeMediaRefRepo) ListReferencedURLs(_ context.Context) ([]string, error) {
	return f.urls, f.err
}

func newTestSweeper(bucketKeys, referencedURLs []string) (*MediaSweeper, *[]string) {
	config.Cfg = &config.Config{
		Server: config.ServerConfig{Env: "dev"},
		MinIO:  config.MinIOConfig{Bucket: "inkstone-media"},
	}

	removed := &[]string{}
	sweeper := NewMediaSweeper(&fakeMediaRefRepo{urls: referencedURLs})
	sweeper.listKeys = func(_ context.Context, prefix string) ([]string, error) {
		return bucketKeys, nil
	}
	sweeper.removeKeys = func(_ context.Context, keys []string) error {
		*removed = append(*removed, keys...)
		return nil
	}
	return sweeper, removed
}

func TestFindOrphans(t *testing.T) {
	keys := []string{
		"dev/uploads/images/notes/202601/01_aaa.png",
		"dev/uploads/images/notes/202601/02_bbb.png",
		"dev/uploads/images/avatars/202601/03_ccc.png",
	}
	referenced := []string{
		"http://127.0.0.1:9000/inkstone-media/dev/uploads/images/notes/202601/01_aaa.png",
		"http://127.0.0.1:9000/inkstone-media/dev/uploads/images/avatars/202601/03_ccc.png",
		// 外部头像地址不影响比对
		"https://api.dicebear.com/7.x/initials/svg?seed=bob",
	}

	sweeper, _ := newTestSweeper(keys, referenced)
	result, err := sweeper.FindOrphans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, []string{"dev/uploads/images/notes/202601/02_bbb.png"}, result.Orphans)
}

func TestSweep_PreviewDoesNotDelete(t *testing.T) {
	keys := []string{"dev/uploads/images/notes/202601/01_aaa.png"}
	sweeper, removed := newTestSweeper(keys, nil)

	result, err := sweeper.Sweep(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, result.Orphans, 1)
	assert.Equal(t, 0, result.Deleted)
	assert.Empty(t, *removed)
}

func TestSweep_ExecuteDeletes(t *testing.T) {
	keys := []string{
		"dev/uploads/images/notes/202601/01_aaa.png",
		"dev/uploads/images/notes/202601/02_bbb.png",
	}
	referenced := []string{
		"http://127.0.0.1:9000/inkstone-media/dev/uploads/images/notes/202601/01_aaa.png",
	}

	sweeper, removed := newTestSweeper(keys, referenced)
	result, err := sweeper.Sweep(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, []string{"dev/uploads/images/notes/202601/02_bbb.png"}, *removed)
}

func TestSweep_NoOrphans(t *testing.T) {
	keys := []string{"dev/uploads/images/notes/202601/01_aaa.png"}
	referenced := []string{
		"http://127.0.0.1:9000/inkstone-media/dev/uploads/images/notes/202601/01_aaa.png",
	}

	sweeper, removed := newTestSweeper(keys, referenced)
	result, err := sweeper.Sweep(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)
	assert.Empty(t, *removed)
}
