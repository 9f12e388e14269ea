package model

import "time"

// NoteLike 点赞记录，唯一键 note_id + user_id
type NoteLike struct {
	NoteID    uint64    `gorm:"primaryKey" json:"noteId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (NoteLike) TableName() string {
	return "note_likes"
}
