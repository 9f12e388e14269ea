package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

// MediaRefRepo 汇总数据库中仍被引用的媒体地址，供清理任务比对
type MediaRefRepo interface {
	ListReferencedURLs(ctx context.Context) ([]string, error)
}

type MediaRefRepoImpl struct {
	db *gorm.DB
}

func NewMediaRefRepo(db *gorm.DB) MediaRefRepo {
	return &MediaRefRepoImpl{db: db}
}

// ListReferencedURLs 收集 notes.cover_media、notes.images 与 users.avatar 三处引用
func (s *MediaRefRepoImpl) ListReferencedURLs(ctx context.Context) ([]string, error) {
	urls := make([]string, 0)

	var notes []*model.Note
	err := s.db.WithContext(ctx).
		Select("cover_media", "images").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		for _, media := range note.CoverMedia {
			if media.URL != "" {
				urls = append(urls, media.URL)
			}
		}
		for _, image := range note.Images {
			if image != "" {
				urls = append(urls, image)
			}
		}
	}

	var avatars []string
	err = s.db.WithContext(ctx).Model(&model.User{}).
		Where("avatar <> ''").
		Pluck("avatar", &avatars).Error
	if err != nil {
		return nil, err
	}
	urls = append(urls, avatars...)

	return urls, nil
}
