package main

import (
	"context"
	"log"

	"church-calendar/config"
	"church-calendar/internal/asana"
	"church-calendar/internal/cache"
	"church-calendar/internal/database"
	"church-calendar/internal/handler"
	"church-calendar/internal/icsimport"
	"church-calendar/internal/images"
	"church-calendar/internal/repository"
	"church-calendar/internal/scheduler"
	"church-calendar/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	fieldMap := asana.DefaultFieldMap()
	if err := fieldMap.Validate(); err != nil {
		log.Fatalf("Invalid Asana field map: %v", err)
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	exportCache := cache.NewExportCacheManager(rdb)

	eventService := service.NewEventService(eventRepo)
	exportService := service.NewExportService(eventRepo, exportCache)
	syncService := service.NewSyncService(
		eventRepo,
		asana.NewClient(cfg.Asana),
		icsimport.NewImporter(),
		images.NewFetcher(),
		fieldMap,
		exportCache,
	)

	sched, err := scheduler.New(syncService, cfg.Sync.IntervalSeconds)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewExportHandler(exportService).RegisterRoutes(router)
	handler.NewSyncHandler(syncService).RegisterRoutes(router)

	router.Run() // listens on 0.0.0.0:8080 by default
}
