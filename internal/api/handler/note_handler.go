package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteSvc   service.NoteService
	actionSvc service.NoteActionService
}

func NewNoteHandler(noteSvc service.NoteService, actionSvc service.NoteActionService) *NoteHandler {
	return &NoteHandler{
		noteSvc:   noteSvc,
		actionSvc: actionSvc,
	}
}

func noteIDParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, service.ErrNoteNotFound
	}
	return id, nil
}

func (s *NoteHandler) GetNotes(c *gin.Context) {
	var queryDTO dto.NoteQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}
	viewerID := c.GetUint64("user_id")
	page, err := s.noteSvc.GetNotes(c.Request.Context(), viewerID, &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *NoteHandler) GetNoteById(c *gin.Context) {
	noteID, err := noteIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	viewerID := c.GetUint64("user_id")
	noteDTO, err := s.noteSvc.GetNoteById(c.Request.Context(), viewerID, noteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, noteDTO)
}

func (s *NoteHandler) CreateNote(c *gin.Context) {
	var createDTO dto.NoteCreateDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	noteDTO, err := s.noteSvc.CreateNote(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "发布成功", noteDTO)
}

func (s *NoteHandler) UpdateNote(c *gin.Context) {
	noteID, err := noteIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var updateDTO dto.NoteCreateDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	noteDTO, err := s.noteSvc.UpdateNote(c.Request.Context(), userID, noteID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, noteDTO)
}

func (s *NoteHandler) DeleteNote(c *gin.Context) {
	noteID, err := noteIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	if err = s.noteSvc.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "删除成功", nil)
}

func (s *NoteHandler) ToggleLike(c *gin.Context) {
	noteID, err := noteIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	state, err := s.actionSvc.ToggleLike(c.Request.Context(), userID, noteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *NoteHandler) ToggleCollect(c *gin.Context) {
	noteID, err := noteIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	state, err := s.actionSvc.ToggleCollect(c.Request.Context(), userID, noteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}
