package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FolderHandler struct {
	folderSvc service.FolderService
}

func NewFolderHandler(folderSvc service.FolderService) *FolderHandler {
	return &FolderHandler{
		folderSvc: folderSvc,
	}
}

func folderIDParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, service.ErrFolderNotFound
	}
	return id, nil
}

func (s *FolderHandler) GetFolders(c *gin.Context) {
	userID := c.GetUint64("user_id")
	folders, err := s.folderSvc.GetFolders(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folders)
}

func (s *FolderHandler) CreateFolder(c *gin.Context) {
	var createDTO dto.FolderCreateDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	folderDTO, err := s.folderSvc.CreateFolder(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "创建成功", folderDTO)
}

func (s *FolderHandler) RenameFolder(c *gin.Context) {
	folderID, err := folderIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var createDTO dto.FolderCreateDTO
	if err = c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	folderDTO, err := s.folderSvc.RenameFolder(c.Request.Context(), userID, folderID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folderDTO)
}

func (s *FolderHandler) DeleteFolder(c *gin.Context) {
	folderID, err := folderIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err = s.folderSvc.DeleteFolder(c.Request.Context(), userID, folderID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "删除成功", nil)
}

func (s *FolderHandler) AddNote(c *gin.Context) {
	folderID, err := folderIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var body struct {
		NoteID string `json:"noteId"`
	}
	if err = c.ShouldBind(&body); err != nil {
		response.Error(c, err)
		return
	}
	noteID, err := strconv.ParseUint(body.NoteID, 10, 64)
	if err != nil {
		response.Error(c, service.ErrNoteNotFound)
		return
	}
	userID := c.GetUint64("user_id")
	if err = s.folderSvc.AddNote(c.Request.Context(), userID, folderID, noteID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "已加入文件夹", nil)
}

func (s *FolderHandler) RemoveNote(c *gin.Context) {
	folderID, err := folderIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	noteID, err := strconv.ParseUint(c.Param("noteId"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrNoteNotFound)
		return
	}
	userID := c.GetUint64("user_id")
	if err = s.folderSvc.RemoveNote(c.Request.Context(), userID, folderID, noteID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "已移出文件夹", nil)
}

func (s *FolderHandler) GetFolderNotes(c *gin.Context) {
	folderID, err := folderIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	userID := c.GetUint64("user_id")
	result, err := s.folderSvc.GetFolderNotes(c.Request.Context(), userID, folderID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
