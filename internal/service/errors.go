package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrInvalidID          = errors.New("invalid id format")
	ErrValidation         = errors.New("validation failed")
	ErrStationNotFound    = errors.New("station not found")
	ErrProgramNotFound    = errors.New("program not found")
	ErrMediaNotFound      = errors.New("media not found")
	ErrJockNotFound       = errors.New("jock not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrScheduleConflict   = errors.New("schedule conflict")
	ErrMediaReferenced    = errors.New("media referenced")
	ErrStationHasPrograms = errors.New("station still has programs")
	ErrNotImage           = errors.New("not a valid image type")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	UnauthorizedError     = errors.New("insufficient permissions")
	UnExpectedError       = errors.New("unexpected error, please retry later")
)

// ErrorMap 哨兵错误到 HTTP 状态码的映射，response.Error 按 errors.Is 匹配，
// 未命中的错误一律按 500 处理
var ErrorMap = map[error]int{
	ErrInvalidID:          BadRequest,
	ErrValidation:         BadRequest,
	ErrStationNotFound:    NotFound,
	ErrProgramNotFound:    NotFound,
	ErrMediaNotFound:      NotFound,
	ErrJockNotFound:       NotFound,
	ErrUserNotFound:       NotFound,
	ErrSlugTaken:          Conflict,
	ErrScheduleConflict:   Conflict,
	ErrMediaReferenced:    Conflict,
	ErrStationHasPrograms: Conflict,
	ErrNotImage:           BadRequest,
	ErrFileTooLarge:       BadRequest,
	ErrUsernameTaken:      Conflict,
	ErrInvalidCredentials: Unauthorized,
	UnauthorizedError:     Forbidden,
	UnExpectedError:       InternalServerError,
}

// validationf 携带细节的校验错误
func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
