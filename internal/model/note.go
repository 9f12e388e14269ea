package model

import (
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Note struct {
	ID           uint64     `gorm:"primaryKey"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Content      string     `gorm:"type:text" json:"content"`
	CoverMedia   MediaList  `gorm:"type:json" json:"cover_media"`
	Images       StringList `gorm:"type:json" json:"images"`
	AuthorID     uint64     `gorm:"not null;index:idx_author_id" json:"author_id"`
	Visibility   string     `gorm:"type:enum('public','private');not null;default:'public'" json:"visibility"`
	LikeCount    int        `gorm:"not null;default:0" json:"like_count"`
	CollectCount int        `gorm:"not null;default:0" json:"collect_count"`
	CommentCount int        `gorm:"not null;default:0" json:"comment_count"`
	ViewCount    int        `gorm:"not null;default:0" json:"view_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联关系
	Author User `gorm:"foreignKey:AuthorID;references:ID"`
}

func (Note) TableName() string {
	return "notes"
}
