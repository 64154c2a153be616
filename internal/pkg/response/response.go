package response

import (
	"Airwave/internal/api/dto"
	"Airwave/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功返回封装
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "created",
		Data:    data,
	})
}

// Paginated 带分页信息的列表返回
func Paginated(ctx *gin.Context, data interface{}, pagination *dto.Pagination) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Message:    "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Message: message,
		Error:   message,
	})
}

// Error 处理错误：校验错误与 JSON 解析错误归为 400，
// 业务哨兵错误按 ErrorMap 映射，其余按 500 处理且不向外透传细节
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, service.BadRequest, err.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, service.BadRequest, "malformed request body")
		return
	}

	for sentinel, status := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			Fail(c, status, err.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "unhandled error", "err", err)
	Fail(c, service.InternalServerError, service.UnExpectedError.Error())
}
