package model

import "time"

// NoteCollect 收藏记录，唯一键 note_id + user_id
type NoteCollect struct {
	NoteID    uint64    `gorm:"primaryKey" json:"noteId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (NoteCollect) TableName() string {
	return "note_collects"
}
