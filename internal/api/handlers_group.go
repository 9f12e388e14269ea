package api

import "Inkstone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler   *handler.UserHandler
	NoteHandler   *handler.NoteHandler
	FolderHandler *handler.FolderHandler
	SocialHandler *handler.SocialHandler
	UploadHandler *handler.UploadHandler
}
