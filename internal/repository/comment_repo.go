package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CommentRow 评论列表行，带作者与被回复者的用户名
type CommentRow struct {
	model.Comment
	Username        string
	Avatar          string
	ReplyToUsername *string
}

type CommentRepo interface {
	GetCommentById(ctx context.Context, commentID uint64) (*model.Comment, error)
	// CreateComment 在单个事务内写入评论并同步笔记的 comment_count
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListByNote(ctx context.Context, noteID uint64, limit, offset int) ([]*CommentRow, int64, error)
	// ToggleLike 翻转评论点赞状态并同步计数，返回新状态
	ToggleLike(ctx context.Context, commentID, userID uint64) (bool, error)
	GetCommentCounters(ctx context.Context, commentID uint64) (int, error)
	GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) ([]uint64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetCommentById(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).First(comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Note{}).Where("id = ?", comment.NoteID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// ListByNote 按创建时间倒序返回评论
func (s *CommentRepoImpl) ListByNote(ctx context.Context, noteID uint64, limit, offset int) ([]*CommentRow, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("note_id = ?", noteID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []*CommentRow
	err = s.db.WithContext(ctx).Model(&model.Comment{}).
		Select(`comments.*, users.username AS username, users.avatar AS avatar,
			reply_users.username AS reply_to_username`).
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Joins("LEFT JOIN comments AS reply_comments ON reply_comments.id = comments.reply_to").
		Joins("LEFT JOIN users AS reply_users ON reply_users.id = reply_comments.user_id").
		Where("comments.note_id = ?", noteID).
		Order("comments.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (s *CommentRepoImpl) ToggleLike(ctx context.Context, commentID, userID uint64) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CommentLike{}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
				Delete(&model.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Comment{}).Where("id = ?", commentID).
				Update("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		}

		if err := tx.Create(&model.CommentLike{CommentID: commentID, UserID: userID, CreatedAt: time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Comment{}).Where("id = ?", commentID).
			Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *CommentRepoImpl) GetCommentCounters(ctx context.Context, commentID uint64) (int, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).
		Select("like_count").
		First(comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return comment.LikeCount, nil
}

// GetLikedCommentIDs 批量查询已点赞的评论 id
func (s *CommentRepoImpl) GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) ([]uint64, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	return ids, err
}
