package handler

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/pkg/response"
	"Airwave/internal/pkg/util"
	"Airwave/internal/service"

	"github.com/gin-gonic/gin"
)

type StationHandler struct {
	stationSvc service.StationService
	mediaSvc   service.MediaService
}

func NewStationHandler(stationSvc service.StationService, mediaSvc service.MediaService) *StationHandler {
	return &StationHandler{
		stationSvc: stationSvc,
		mediaSvc:   mediaSvc,
	}
}

func (s *StationHandler) List(c *gin.Context) {
	var q dto.StationListDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	q.Normalize()

	stations, total, err := s.stationSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, stations, dto.NewPagination(q.Page, q.Limit, total))
}

func (s *StationHandler) Get(c *gin.Context) {
	station, err := s.stationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, station)
}

func (s *StationHandler) Create(c *gin.Context) {
	var req dto.CreateStationDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	logoID, err := ingestUploadedImage(c, s.mediaSvc, "logo", service.IngestOptions{
		Folder:    "stations",
		MaxWidth:  600,
		MaxHeight: 600,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	station, err := s.stationSvc.Create(c.Request.Context(), &req, logoID)
	if err != nil {
		if logoID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *logoID)
		}
		response.Error(c, err)
		return
	}
	response.Created(c, station)
}

func (s *StationHandler) Update(c *gin.Context) {
	var req dto.UpdateStationDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	logoID, err := ingestUploadedImage(c, s.mediaSvc, "logo", service.IngestOptions{
		Folder:    "stations",
		MaxWidth:  600,
		MaxHeight: 600,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	station, err := s.stationSvc.Update(c.Request.Context(), c.Param("id"), &req, logoID)
	if err != nil {
		if logoID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *logoID)
		}
		response.Error(c, err)
		return
	}
	response.Success(c, station)
}

func (s *StationHandler) Delete(c *gin.Context) {
	if err := s.stationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
