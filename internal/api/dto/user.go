package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=32"`
	Password string `json:"password" binding:"required" validate:"min=8,max=64"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 签发的令牌
type TokenDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO 用户视图
type UserDTO struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
