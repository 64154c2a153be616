package api

import "Airwave/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	StationHandler *handler.StationHandler
	ProgramHandler *handler.ProgramHandler
	JockHandler    *handler.JockHandler
	MediaHandler   *handler.MediaHandler
	UserHandler    *handler.UserHandler
}
