package dto

// FolderCreateDTO 创建/重命名文件夹请求
type FolderCreateDTO struct {
	Name string `json:"name"`
}

// FolderDTO 文件夹信息
type FolderDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NoteCount int    `json:"noteCount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FolderNoteDTO 文件夹内的笔记摘要，封面只取第一张
type FolderNoteDTO struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	CoverMedia   []MediaRefDTO `json:"coverMedia"`
	LikeCount    int           `json:"likeCount"`
	CollectCount int           `json:"collectCount"`
	CreatedAt    string        `json:"createdAt"`
}
