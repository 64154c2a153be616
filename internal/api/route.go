package api

import (
	"Airwave/internal/api/middleware"
	"Airwave/internal/model"
	"Airwave/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "pong",
			})
		})

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedIn := authGroup.Group("")
			loggedIn.Use(middleware.AuthMiddleware())
			{
				loggedIn.POST("/logout", group.UserHandler.Logout)
				loggedIn.GET("/me", group.UserHandler.Me)
			}
		}

		stationGroup := v1.Group("/stations")
		{
			stationGroup.GET("", group.StationHandler.List)
			stationGroup.GET("/:id", group.StationHandler.Get)

			adminGroup := stationGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
			{
				adminGroup.POST("", group.StationHandler.Create)
				adminGroup.PUT("/:id", group.StationHandler.Update)
				adminGroup.DELETE("/:id", group.StationHandler.Delete)
			}
		}

		programGroup := v1.Group("/programs")
		{
			programGroup.GET("", group.ProgramHandler.List)
			programGroup.GET("/schedule/day/:day", group.ProgramHandler.ScheduleByDay)
			programGroup.GET("/schedule/now", group.ProgramHandler.NowAiring)
			programGroup.GET("/schedule/station/:stationId", group.ProgramHandler.ScheduleByStation)
			programGroup.GET("/schedule/weekly", group.ProgramHandler.WeeklyGrid)

			adminGroup := programGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
			{
				adminGroup.GET("/conflicts", group.ProgramHandler.Conflicts)
				adminGroup.POST("", group.ProgramHandler.Create)
				adminGroup.PUT("/:id", group.ProgramHandler.Update)
				adminGroup.DELETE("/:id", group.ProgramHandler.Delete)
			}
		}

		jockGroup := v1.Group("/jocks")
		{
			jockGroup.GET("", group.JockHandler.List)
			jockGroup.GET("/:id", group.JockHandler.Get)

			adminGroup := jockGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
			{
				adminGroup.POST("", group.JockHandler.Create)
				adminGroup.PUT("/:id", group.JockHandler.Update)
				adminGroup.DELETE("/:id", group.JockHandler.Delete)
			}
		}

		mediaGroup := v1.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin))
		{
			mediaGroup.GET("", group.MediaHandler.List)
			mediaGroup.GET("/:id", group.MediaHandler.Get)
			mediaGroup.PUT("/:id", group.MediaHandler.Update)
			mediaGroup.DELETE("/:id", group.MediaHandler.Delete)
		}
	}

	return r
}
