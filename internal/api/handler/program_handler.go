package handler

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/pkg/response"
	"Airwave/internal/pkg/util"
	"Airwave/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	programSvc service.ProgramService
	mediaSvc   service.MediaService
}

func NewProgramHandler(programSvc service.ProgramService, mediaSvc service.MediaService) *ProgramHandler {
	return &ProgramHandler{
		programSvc: programSvc,
		mediaSvc:   mediaSvc,
	}
}

func (s *ProgramHandler) List(c *gin.Context) {
	var q dto.ProgramListDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	q.Normalize()

	programs, total, err := s.programSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, programs, dto.NewPagination(q.Page, q.Limit, total))
}

func (s *ProgramHandler) Create(c *gin.Context) {
	var req dto.CreateProgramDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	mediaID, err := ingestUploadedImage(c, s.mediaSvc, "image", service.IngestOptions{
		Folder:    "programs",
		MaxWidth:  1200,
		MaxHeight: 1200,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	program, err := s.programSvc.Create(c.Request.Context(), &req, mediaID)
	if err != nil {
		// 节目校验失败时回收刚入库的图片
		if mediaID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *mediaID)
		}
		response.Error(c, err)
		return
	}
	response.Created(c, program)
}

func (s *ProgramHandler) Update(c *gin.Context) {
	var req dto.UpdateProgramDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	mediaID, err := ingestUploadedImage(c, s.mediaSvc, "image", service.IngestOptions{
		Folder:    "programs",
		MaxWidth:  1200,
		MaxHeight: 1200,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	program, err := s.programSvc.Update(c.Request.Context(), c.Param("id"), &req, mediaID)
	if err != nil {
		if mediaID != nil {
			_ = s.mediaSvc.Remove(c.Request.Context(), *mediaID)
		}
		response.Error(c, err)
		return
	}
	response.Success(c, program)
}

func (s *ProgramHandler) Delete(c *gin.Context) {
	if err := s.programSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ScheduleByDay :day 接受 0-6 或英文星期名
func (s *ProgramHandler) ScheduleByDay(c *gin.Context) {
	programs, err := s.programSvc.ScheduleByDay(c.Request.Context(), c.Param("day"), c.Query("station"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, programs)
}

func (s *ProgramHandler) ScheduleByStation(c *gin.Context) {
	programs, err := s.programSvc.ScheduleByStation(c.Request.Context(), c.Param("stationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, programs)
}

func (s *ProgramHandler) WeeklyGrid(c *gin.Context) {
	grid, err := s.programSvc.WeeklyGrid(c.Request.Context(), c.Query("station"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, grid)
}

func (s *ProgramHandler) NowAiring(c *gin.Context) {
	programs, err := s.programSvc.NowAiring(c.Request.Context(), c.Query("station"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, programs)
}

func (s *ProgramHandler) Conflicts(c *gin.Context) {
	pairs, err := s.programSvc.FindConflicts(c.Request.Context(), c.Query("station"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pairs)
}
