package handler

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/pkg/response"
	"Airwave/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

func (s *MediaHandler) List(c *gin.Context) {
	var q dto.ListQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	q.Normalize()

	items, total, err := s.mediaSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, dto.NewPagination(q.Page, q.Limit, total))
}

func (s *MediaHandler) Get(c *gin.Context) {
	item, err := s.mediaSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *MediaHandler) Update(c *gin.Context) {
	var req dto.UpdateMediaDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	item, err := s.mediaSvc.UpdateMeta(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

func (s *MediaHandler) Delete(c *gin.Context) {
	if err := s.mediaSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
