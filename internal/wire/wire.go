package wire

import (
	"Airwave/internal/api"
	"Airwave/internal/api/config"
	"Airwave/internal/api/handler"
	"Airwave/internal/job"
	"Airwave/internal/pkg/cron"
	"Airwave/internal/pkg/minio"
	"Airwave/internal/repository"
	"Airwave/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *driver.Database
	CronMgr *cron.Manager
}

func BuildApplication(db *driver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	stationRepo := repository.NewStationRepo(db)
	programRepo := repository.NewProgramRepo(db)
	mediaRepo := repository.NewMediaRepo(db)
	jockRepo := repository.NewJockRepo(db)
	userRepo := repository.NewUserRepo(db)

	store := minio.NewStore()

	mediaService := service.NewMediaService(mediaRepo, programRepo, stationRepo, jockRepo, store, service.MediaConfig{
		KeyPrefix: cfg.KeyPrefix(),
		Quiet:     cfg.IsProduction(),
	})
	programService := service.NewProgramService(programRepo, stationRepo, mediaService, clockwork.NewRealClock())
	stationService := service.NewStationService(stationRepo, programRepo, mediaService)
	jockService := service.NewJockService(jockRepo, mediaService)
	userService := service.NewUserService(userRepo)

	handlers := &api.HandlersGroup{
		StationHandler: handler.NewStationHandler(stationService, mediaService),
		ProgramHandler: handler.NewProgramHandler(programService, mediaService),
		JockHandler:    handler.NewJockHandler(jockService, mediaService),
		MediaHandler:   handler.NewMediaHandler(mediaService),
		UserHandler:    handler.NewUserHandler(userService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaOrphanJob(store))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
