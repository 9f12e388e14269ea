package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type FolderRepo interface {
	GetFolderById(ctx context.Context, folderID uint64) (*model.Folder, error)
	GetFoldersByUserId(ctx context.Context, userID uint64) ([]*model.Folder, error)
	CreateFolder(ctx context.Context, folder *model.Folder) error
	UpdateFolder(ctx context.Context, folderID uint64, name string) error
	DeleteFolder(ctx context.Context, folderID uint64) error
	HasNote(ctx context.Context, folderID, noteID uint64) (bool, error)
	// AddNote 在单个事务内写入关联并同步 note_count
	AddNote(ctx context.Context, folderID, noteID uint64) error
	// RemoveNote 在单个事务内删除关联并同步 note_count，计数下限为 0
	RemoveNote(ctx context.Context, folderID, noteID uint64) error
	ListNotes(ctx context.Context, folderID uint64, limit, offset int) ([]*NoteRow, int64, error)
}

type FolderRepoImpl struct {
	db *gorm.DB
}

func NewFolderRepo(db *gorm.DB) FolderRepo {
	return &FolderRepoImpl{db: db}
}

func (s *FolderRepoImpl) GetFolderById(ctx context.Context, folderID uint64) (*model.Folder, error) {
	folder := &model.Folder{}
	err := s.db.WithContext(ctx).First(folder, folderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return folder, nil
}

func (s *FolderRepoImpl) GetFoldersByUserId(ctx context.Context, userID uint64) ([]*model.Folder, error) {
	var folders []*model.Folder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&folders).Error
	return folders, err
}

func (s *FolderRepoImpl) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return s.db.WithContext(ctx).Create(folder).Error
}

func (s *FolderRepoImpl) UpdateFolder(ctx context.Context, folderID uint64, name string) error {
	return s.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ?", folderID).
		Update("name", name).Error
}

func (s *FolderRepoImpl) DeleteFolder(ctx context.Context, folderID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folderID).Delete(&model.FolderNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Folder{}, folderID).Error
	})
}

func (s *FolderRepoImpl) HasNote(ctx context.Context, folderID, noteID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.FolderNote{}).
		Where("folder_id = ? AND note_id = ?", folderID, noteID).
		Count(&count).Error
	return count > 0, err
}

func (s *FolderRepoImpl) AddNote(ctx context.Context, folderID, noteID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.FolderNote{FolderID: folderID, NoteID: noteID, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Folder{}).Where("id = ?", folderID).
			Update("note_count", gorm.Expr("note_count + 1")).Error
	})
}

func (s *FolderRepoImpl) RemoveNote(ctx context.Context, folderID, noteID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ? AND note_id = ?", folderID, noteID).
			Delete(&model.FolderNote{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Folder{}).Where("id = ?", folderID).
			Update("note_count", gorm.Expr("GREATEST(note_count - 1, 0)")).Error
	})
}

// ListNotes 按加入收藏夹的时间倒序返回笔记
func (s *FolderRepoImpl) ListNotes(ctx context.Context, folderID uint64, limit, offset int) ([]*NoteRow, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.FolderNote{}).
		Where("folder_id = ?", folderID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []*NoteRow
	err = s.db.WithContext(ctx).Model(&model.Note{}).
		Select("notes.*, users.username AS author_name, users.avatar AS author_avatar").
		Joins("JOIN folder_notes ON folder_notes.note_id = notes.id AND folder_notes.folder_id = ?", folderID).
		Joins("LEFT JOIN users ON users.id = notes.author_id").
		Order("folder_notes.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}
