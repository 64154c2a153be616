package dto

// CreateProgramDTO 创建节目（multipart 表单字段，image 文件另行处理）
type CreateProgramDTO struct {
	Name        string   `form:"name" binding:"required" validate:"min=1,max=255"`
	Slug        string   `form:"slug"`
	Description string   `form:"description"`
	Days        []string `form:"day[]"`
	StartTime   string   `form:"startTime" binding:"required"`
	EndTime     string   `form:"endTime" binding:"required"`
	Duration    *int     `form:"duration"`
	Station     string   `form:"station" binding:"required"`
	IsActive    *bool    `form:"isActive"`
}

// UpdateProgramDTO 更新节目，未提供的字段保持原值
type UpdateProgramDTO struct {
	Name        *string  `form:"name"`
	Slug        *string  `form:"slug"`
	Description *string  `form:"description"`
	Days        []string `form:"day[]"`
	StartTime   *string  `form:"startTime"`
	EndTime     *string  `form:"endTime"`
	Duration    *int     `form:"duration"`
	Station     *string  `form:"station"`
	IsActive    *bool    `form:"isActive"`
}

// ProgramListDTO 节目列表查询参数
type ProgramListDTO struct {
	ListQueryDTO
	IsActive *bool  `form:"isActive"`
	Station  string `form:"station"`
	Day      *int   `form:"day"`
}

// ProgramDTO 节目视图
type ProgramDTO struct {
	ID              string `json:"id"`
	StationID       string `json:"stationId"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	ImageMediaID    string `json:"imageMediaId,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Days            []int  `json:"days"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// ConflictPairDTO 冲突节目对，供后台审阅
type ConflictPairDTO struct {
	First  ProgramDTO `json:"first"`
	Second ProgramDTO `json:"second"`
	Days   []int      `json:"days"`
}
