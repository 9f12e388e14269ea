package model

import "time"

// FolderNote 收藏夹与笔记的多对多关系，唯一键 folder_id + note_id
type FolderNote struct {
	FolderID  uint64    `gorm:"primaryKey" json:"folderId"`
	NoteID    uint64    `gorm:"primaryKey;index:idx_note_id" json:"noteId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (FolderNote) TableName() string {
	return "folder_notes"
}
