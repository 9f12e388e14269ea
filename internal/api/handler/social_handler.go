package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialSvc service.SocialService
}

func NewSocialHandler(socialSvc service.SocialService) *SocialHandler {
	return &SocialHandler{
		socialSvc: socialSvc,
	}
}

func (s *SocialHandler) ToggleFollow(c *gin.Context) {
	var followDTO dto.ToggleFollowDTO
	if err := c.ShouldBind(&followDTO); err != nil {
		response.Error(c, err)
		return
	}
	targetID, err := strconv.ParseUint(followDTO.UserID, 10, 64)
	if err != nil {
		response.Error(c, service.ErrUserNotFound)
		return
	}
	userID := c.GetUint64("user_id")
	state, err := s.socialSvc.ToggleFollow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// pageQuery 公共分页参数
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return page, pageSize
}

// targetUserQuery userId 缺省为当前登录用户
func targetUserQuery(c *gin.Context) (uint64, error) {
	raw := c.Query("userId")
	if raw == "" {
		return c.GetUint64("user_id"), nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

func (s *SocialHandler) GetFollowing(c *gin.Context) {
	targetID, err := targetUserQuery(c)
	if err != nil {
		response.Error(c, service.ErrUserNotFound)
		return
	}
	page, pageSize := pageQuery(c)
	viewerID := c.GetUint64("user_id")
	result, err := s.socialSvc.GetFollowing(c.Request.Context(), viewerID, targetID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *SocialHandler) GetFollowers(c *gin.Context) {
	targetID, err := targetUserQuery(c)
	if err != nil {
		response.Error(c, service.ErrUserNotFound)
		return
	}
	page, pageSize := pageQuery(c)
	viewerID := c.GetUint64("user_id")
	result, err := s.socialSvc.GetFollowers(c.Request.Context(), viewerID, targetID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *SocialHandler) CreateComment(c *gin.Context) {
	var createDTO dto.CommentCreateDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetUint64("user_id")
	commentDTO, err := s.socialSvc.CreateComment(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "评论成功", commentDTO)
}

func (s *SocialHandler) GetComments(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Query("noteId"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrNoteNotFound)
		return
	}
	page, pageSize := pageQuery(c)
	viewerID := c.GetUint64("user_id")
	result, err := s.socialSvc.GetComments(c.Request.Context(), viewerID, noteID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *SocialHandler) ToggleCommentLike(c *gin.Context) {
	var likeDTO dto.CommentLikeDTO
	if err := c.ShouldBind(&likeDTO); err != nil {
		response.Error(c, err)
		return
	}
	commentID, err := strconv.ParseUint(likeDTO.CommentID, 10, 64)
	if err != nil {
		response.Error(c, service.ErrCommentNotFound)
		return
	}
	userID := c.GetUint64("user_id")
	state, err := s.socialSvc.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}
