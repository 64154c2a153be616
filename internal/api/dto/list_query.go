package dto

// ListQueryDTO 列表查询公共参数
type ListQueryDTO struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// Normalize 填充分页默认值
func (q *ListQueryDTO) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}
