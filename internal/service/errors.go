package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrRegisterFieldsEmpty  = errors.New("用户名、邮箱和密码不能为空")
	ErrUsernameExist        = errors.New("用户名已存在")
	ErrEmailExist           = errors.New("邮箱已被注册")
	ErrLoginFailed          = errors.New("用户名或密码错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrPasswordTooShort     = errors.New("新密码长度不能少于6位")
	ErrOldPasswordIncorrect = errors.New("原密码错误")
	ErrTitleRequired        = errors.New("标题不能为空")
	ErrNoteNotFound         = errors.New("笔记不存在")
	ErrNoteNoPermission     = errors.New("无权限操作此笔记")
	ErrFolderNameRequired   = errors.New("文件夹名称不能为空")
	ErrFolderNotFound       = errors.New("文件夹不存在")
	ErrFolderNoPermission   = errors.New("无权限操作此文件夹")
	ErrNoteAlreadyInFolder  = errors.New("笔记已在此文件夹中")
	ErrNoteNotInFolder      = errors.New("笔记不在此文件夹中")
	ErrFollowSelf           = errors.New("不能关注自己")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrCommentFieldsEmpty   = errors.New("笔记ID和评论内容不能为空")
	ErrReplyToInvalid       = errors.New("回复的评论不存在")
	ErrFileRequired         = errors.New("请选择要上传的文件")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrFileTooLarge         = errors.New("文件大小超出限制")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

// isDuplicateError 唯一键冲突，并发写入同一行时出现
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrRegisterFieldsEmpty:  BadRequest,
	ErrUsernameExist:        BadRequest,
	ErrEmailExist:           BadRequest,
	ErrLoginFailed:          Unauthorized,
	ErrUserNotFound:         NotFound,
	ErrPasswordTooShort:     BadRequest,
	ErrOldPasswordIncorrect: BadRequest,
	ErrTitleRequired:        BadRequest,
	ErrNoteNotFound:         NotFound,
	ErrNoteNoPermission:     Forbidden,
	ErrFolderNameRequired:   BadRequest,
	ErrFolderNotFound:       NotFound,
	ErrFolderNoPermission:   Forbidden,
	ErrNoteAlreadyInFolder:  BadRequest,
	ErrNoteNotInFolder:      NotFound,
	ErrFollowSelf:           BadRequest,
	ErrCommentNotFound:      NotFound,
	ErrCommentFieldsEmpty:   BadRequest,
	ErrReplyToInvalid:       BadRequest,
	ErrFileRequired:         BadRequest,
	ErrFileNotSupported:     BadRequest,
	ErrFileTooLarge:         BadRequest,
	UnauthorizedError:       Forbidden,
	UnExpectedError:         InternalServerError,
}
