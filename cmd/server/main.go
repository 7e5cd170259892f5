package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/Psedro/IPVCNotes-VF/internal/access"
	"github.com/Psedro/IPVCNotes-VF/internal/config"
	"github.com/Psedro/IPVCNotes-VF/internal/database"
	"github.com/Psedro/IPVCNotes-VF/internal/handlers"
	"github.com/Psedro/IPVCNotes-VF/internal/kafka"
	"github.com/Psedro/IPVCNotes-VF/internal/middleware"
	"github.com/Psedro/IPVCNotes-VF/internal/redis"
	"github.com/Psedro/IPVCNotes-VF/internal/repositories"
	"github.com/Psedro/IPVCNotes-VF/internal/router"
	"github.com/Psedro/IPVCNotes-VF/internal/services"
	"github.com/Psedro/IPVCNotes-VF/internal/storage"
	"github.com/Psedro/IPVCNotes-VF/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogFile)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("database connection failed")
	}

	reg := repositories.NewGormRegistry(db)
	tx := repositories.NewGormTxManager(db)

	if err := database.SeedPermissions(context.Background(), reg.Permissions); err != nil {
		logger.Log.Fatal().Err(err).Msg("permission seeding failed")
	}

	// Optional infrastructure: the API runs without cache and broker.
	cache := redis.NewService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	var producer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","))
		defer producer.Close()
	}

	blobStore, err := buildBlobStore(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("blob store setup failed")
	}

	resolver := access.NewResolver(reg.Shares, reg.Permissions)
	shareService := services.NewShareService(reg, resolver)
	requestService := services.NewEditRequestService(reg.Folders, reg.EditRequests, tx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(corsMiddleware())

	p := ginprometheus.NewWithConfig(ginprometheus.Config{
		Subsystem: "gin",
	})
	p.Use(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads", cfg.UploadDir)

	router.Setup(r, router.Handlers{
		Auth:        handlers.NewAuthHandler(reg.Users, cfg.TokenSecret),
		Folder:      handlers.NewFolderHandler(reg, resolver, tx, producer, cache),
		Note:        handlers.NewNoteHandler(reg.Notes, reg.Folders, resolver, producer),
		Share:       handlers.NewShareHandler(shareService, producer, cache),
		Permission:  handlers.NewPermissionHandler(reg.Permissions),
		EditRequest: handlers.NewEditRequestHandler(requestService, producer),
		Upload:      handlers.NewUploadHandler(blobStore),
	}, cfg.TokenSecret, reg.Users)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("shutdown failed")
	}

	if cache != nil {
		cache.Close()
	}
}

// buildBlobStore picks S3 when an endpoint or credentials are configured
// and falls back to the local uploads directory.
func buildBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
