package handler

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/pkg/response"
	"Airwave/internal/pkg/util"
	"Airwave/internal/service"

	"github.com/gin-gonic/gin"
)

type JockHandler struct {
	jockSvc  service.JockService
	mediaSvc service.MediaService
}

func NewJockHandler(jockSvc service.JockService, mediaSvc service.MediaService) *JockHandler {
	return &JockHandler{
		jockSvc:  jockSvc,
		mediaSvc: mediaSvc,
	}
}

func (s *JockHandler) List(c *gin.Context) {
	var q dto.ListQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	q.Normalize()

	jocks, total, err := s.jockSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, jocks, dto.NewPagination(q.Page, q.Limit, total))
}

func (s *JockHandler) Get(c *gin.Context) {
	jock, err := s.jockSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, jock)
}

func (s *JockHandler) Create(c *gin.Context) {
	var req dto.CreateJockDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	imageID, err := ingestUploadedImage(c, s.mediaSvc, "image", service.IngestOptions{
		Folder:    "jocks",
		MaxWidth:  800,
		MaxHeight: 800,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	jock, err := s.jockSvc.Create(c.Request.Context(), &req, imageID)
	if err != nil {
		if imageID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *imageID)
		}
		response.Error(c, err)
		return
	}
	response.Created(c, jock)
}

func (s *JockHandler) Update(c *gin.Context) {
	var req dto.UpdateJockDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	imageID, err := ingestUploadedImage(c, s.mediaSvc, "image", service.IngestOptions{
		Folder:    "jocks",
		MaxWidth:  800,
		MaxHeight: 800,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	jock, err := s.jockSvc.Update(c.Request.Context(), c.Param("id"), &req, imageID)
	if err != nil {
		if imageID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *imageID)
		}
		response.Error(c, err)
		return
	}
	response.Success(c, jock)
}

func (s *JockHandler) Delete(c *gin.Context) {
	if err := s.jockSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
