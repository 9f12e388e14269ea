package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type NoteActionRepo interface {
	// ToggleLike 在单个事务内翻转点赞状态并同步计数，返回新状态
	ToggleLike(ctx context.Context, noteID, userID uint64) (bool, error)
	// ToggleCollect 在单个事务内翻转收藏状态并同步计数，返回新状态
	ToggleCollect(ctx context.Context, noteID, userID uint64) (bool, error)
	GetLikedNoteIDs(ctx context.Context, userID uint64, noteIDs []uint64) ([]uint64, error)
	GetCollectedNoteIDs(ctx context.Context, userID uint64, noteIDs []uint64) ([]uint64, error)
	GetNoteCounters(ctx context.Context, noteID uint64) (likeCount, collectCount int, err error)
}

type NoteActionRepoImpl struct {
	db *gorm.DB
}

func NewNoteActionRepo(db *gorm.DB) NoteActionRepo {
	return &NoteActionRepoImpl{db: db}
}

func (s *NoteActionRepoImpl) ToggleLike(ctx context.Context, noteID, userID uint64) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.NoteLike{}).
			Where("note_id = ? AND user_id = ?", noteID, userID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Where("note_id = ? AND user_id = ?", noteID, userID).
				Delete(&model.NoteLike{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Note{}).Where("id = ?", noteID).
				Update("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		}

		if err := tx.Create(&model.NoteLike{NoteID: noteID, UserID: userID, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Note{}).Where("id = ?", noteID).
			Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *NoteActionRepoImpl) ToggleCollect(ctx context.Context, noteID, userID uint64) (bool, error) {
	var collected bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.NoteCollect{}).
			Where("note_id = ? AND user_id = ?", noteID, userID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Where("note_id = ? AND user_id = ?", noteID, userID).
				Delete(&model.NoteCollect{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Note{}).Where("id = ?", noteID).
				Update("collect_count", gorm.Expr("GREATEST(collect_count - 1, 0)")).Error; err != nil {
				return err
			}
			collected = false
			return nil
		}

		if err := tx.Create(&model.NoteCollect{NoteID: noteID, UserID: userID, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Note{}).Where("id = ?", noteID).
			Update("collect_count", gorm.Expr("collect_count + 1")).Error; err != nil {
			return err
		}
		collected = true
		return nil
	})
	return collected, err
}

// GetLikedNoteIDs 批量查询已点赞的笔记 id
func (s *NoteActionRepoImpl) GetLikedNoteIDs(ctx context.Context, userID uint64, noteIDs []uint64) ([]uint64, error) {
	if len(noteIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.NoteLike{}).
		Where("user_id = ? AND note_id IN ?", userID, noteIDs).
		Pluck("note_id", &ids).Error
	return ids, err
}

// GetCollectedNoteIDs 批量查询已收藏的笔记 id
func (s *NoteActionRepoImpl) GetCollectedNoteIDs(ctx context.Context, userID uint64, noteIDs []uint64) ([]uint64, error) {
	if len(noteIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.NoteCollect{}).
		Where("user_id = ? AND note_id IN ?", userID, noteIDs).
		Pluck("note_id", &ids).Error
	return ids, err
}

// GetNoteCounters 切换后回读计数，保证返回值来自存储而非内存推算
func (s *NoteActionRepoImpl) GetNoteCounters(ctx context.Context, noteID uint64) (int, int, error) {
	note := &model.Note{}
	err := s.db.WithContext(ctx).
		Select("like_count", "collect_count").
		First(note, noteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return note.LikeCount, note.CollectCount, nil
}
