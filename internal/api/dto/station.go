package dto

// CreateStationDTO 创建电台
type CreateStationDTO struct {
	Name          string `form:"name" binding:"required" validate:"min=1,max=255"`
	Slug          string `form:"slug"`
	Frequency     string `form:"frequency" binding:"required"`
	LocationGroup string `form:"locationGroup" binding:"required,oneof=luzon visayas mindanao"`
	Status        string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateStationDTO 更新电台
type UpdateStationDTO struct {
	Name          *string `form:"name"`
	Slug          *string `form:"slug"`
	Frequency     *string `form:"frequency"`
	LocationGroup *string `form:"locationGroup" binding:"omitempty,oneof=luzon visayas mindanao"`
	Status        *string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// StationListDTO 电台列表查询参数
type StationListDTO struct {
	ListQueryDTO
	Status        string `form:"status" binding:"omitempty,oneof=active inactive"`
	LocationGroup string `form:"locationGroup" binding:"omitempty,oneof=luzon visayas mindanao"`
}

// StationDTO 电台视图
type StationDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Frequency     string `json:"frequency"`
	LocationGroup string `json:"locationGroup"`
	Status        string `json:"status"`
	LogoMediaID   string `json:"logoMediaId,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
}
