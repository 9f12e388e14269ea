package model

import "time"

// CommentLike 评论点赞记录，唯一键 comment_id + user_id
type CommentLike struct {
	CommentID uint64    `gorm:"primaryKey" json:"commentId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
