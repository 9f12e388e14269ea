package repository

import (
	"Inkstone/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// FollowUserRow 关注列表行，带三项统计
type FollowUserRow struct {
	ID             uint64
	Username       string
	Nickname       string
	Avatar         string
	Bio            string
	FollowingCount int
	FollowerCount  int
	LikeCount      int
}

type FollowRepo interface {
	// Toggle 翻转关注关系，返回新状态
	Toggle(ctx context.Context, followerID, followingID uint64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowingIDs(ctx context.Context, followerID uint64, userIDs []uint64) ([]uint64, error)
	ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*FollowUserRow, int64, error)
	ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*FollowUserRow, int64, error)
	CountFollowing(ctx context.Context, userID uint64) (int64, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

func (s *FollowRepoImpl) Toggle(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var following bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			following = false
			return tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
				Delete(&model.Follow{}).Error
		}

		following = true
		return tx.Create(&model.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   time.Now(),
		}).Error
	})
	return following, err
}

func (s *FollowRepoImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowingIDs 批量查询已关注的用户 id
func (s *FollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64, userIDs []uint64) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, userIDs).
		Pluck("following_id", &ids).Error
	return ids, err
}

// 统计列用相关子查询一次带出，避免对每个用户再发 N 条查询
const followUserColumns = `users.id, users.username, users.nickname, users.avatar, users.bio,
	(SELECT COUNT(*) FROM follows WHERE follower_id = users.id) AS following_count,
	(SELECT COUNT(*) FROM follows WHERE following_id = users.id) AS follower_count,
	(SELECT COALESCE(SUM(like_count), 0) FROM notes WHERE author_id = users.id) AS like_count`

func (s *FollowRepoImpl) ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*FollowUserRow, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []*FollowUserRow
	err = s.db.WithContext(ctx).Model(&model.User{}).
		Select(followUserColumns).
		Joins("JOIN follows ON follows.following_id = users.id AND follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (s *FollowRepoImpl) ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*FollowUserRow, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []*FollowUserRow
	err = s.db.WithContext(ctx).Model(&model.User{}).
		Select(followUserColumns).
		Joins("JOIN follows ON follows.follower_id = users.id AND follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (s *FollowRepoImpl) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *FollowRepoImpl) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}
