package model

import "time"

type Folder struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	NoteCount int       `gorm:"not null;default:0" json:"note_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Folder) TableName() string {
	return "folders"
}
