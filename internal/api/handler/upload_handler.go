package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadSvc service.UploadService
}

func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadSvc: uploadSvc,
	}
}

// UploadImage 接收 multipart 字段 file，可选字段 category（notes/avatars）
func (s *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrFileRequired)
		return
	}
	category := c.PostForm("category")
	result, err := s.uploadSvc.UploadImage(c.Request.Context(), file, category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "上传成功", result)
}

func (s *UploadHandler) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrFileRequired)
		return
	}
	result, err := s.uploadSvc.UploadVideo(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "上传成功", result)
}

func (s *UploadHandler) GetUploadCredential(c *gin.Context) {
	fileName := c.Query("fileName")
	result, err := s.uploadSvc.GetUploadCredential(c.Request.Context(), fileName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
