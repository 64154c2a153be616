package dto

// MediaDTO 媒体资源视图
type MediaDTO struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Key          string `json:"key"`
	Bucket       string `json:"bucket"`
	URL          string `json:"url"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Alt          string `json:"alt,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// UpdateMediaDTO 仅元信息可编辑
type UpdateMediaDTO struct {
	Alt     *string `json:"alt"`
	Caption *string `json:"caption"`
}
