package wire

import (
	"Spotlight/internal/api"
	"Spotlight/internal/api/config"
	"Spotlight/internal/api/handler"
	"Spotlight/internal/job"
	"Spotlight/internal/pkg/cron"
	"Spotlight/internal/pkg/redis"
	"Spotlight/internal/pkg/youtube"
	"Spotlight/internal/repository"
	"Spotlight/internal/service"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router     *gin.Engine
	DB         *gorm.DB
	CronMgr    *cron.Manager
	IngestSvc  service.IngestService
	HeroPinSvc service.HeroPinService
}

func BuildApplication(db *gorm.DB, rdb *redisv9.Client, cfg *config.Config) (*ApplicationContainer, error) {
	store := redis.NewStore(rdb)
	ytClient := youtube.NewClient(cfg.YouTube)

	videoRepo := repository.NewVideoRepo(db)
	supportRepo := repository.NewSupportEventRepo(db)

	heroPinService := service.NewHeroPinService(store, cfg.Hero.PinnedIDs)
	videoService := service.NewVideoService(videoRepo, supportRepo, heroPinService, cfg.Ranking, cfg.Hero)
	supportService := service.NewSupportService(videoRepo, supportRepo, store, cfg.Support, cfg.Ranking)
	ingestService := service.NewIngestService(videoRepo, ytClient)

	handlers := &api.HandlersGroup{
		VideoHandler: handler.NewVideoHandler(videoService, supportService),
	}

	router := api.SetupRouter(handlers)

	videoStatsJob := job.NewVideoStatsJob(ingestService, store, cfg.Cron.RefreshDays)
	cronMgr := cron.NewCronManager(videoStatsJob, cfg.Cron.RefreshSpec)

	return &ApplicationContainer{
		Router:     router,
		DB:         db,
		CronMgr:    cronMgr,
		IngestSvc:  ingestService,
		HeroPinSvc: heroPinService,
	}, nil
}
