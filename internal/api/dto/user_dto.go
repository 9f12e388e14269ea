package dto

// RegisterDTO 注册请求，空字段校验在 service 层完成以保证提示文案
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO 登录请求，account 可以是用户名或邮箱
type LoginDTO struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordDTO 修改密码请求
type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateProfileDTO 更新资料请求。注意：整行覆盖，未传字段会被置空
type UpdateProfileDTO struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// UserDTO 用户公开信息，永远不包含密码
type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoginResultDTO 登录返回
type LoginResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
