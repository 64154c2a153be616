package dto

// CreateJockDTO 创建主持人
type CreateJockDTO struct {
	Name string `form:"name" binding:"required" validate:"min=1,max=255"`
	Bio  string `form:"bio"`
}

// UpdateJockDTO 更新主持人
type UpdateJockDTO struct {
	Name *string `form:"name"`
	Bio  *string `form:"bio"`
}

// JockDTO 主持人视图
type JockDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Bio          string `json:"bio,omitempty"`
	ImageMediaID string `json:"imageMediaId,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}
