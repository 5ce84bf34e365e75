package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sxtnflur/ar-api/docs"
	"github.com/sxtnflur/ar-api/internal/config"
	"github.com/sxtnflur/ar-api/internal/handler"
	"github.com/sxtnflur/ar-api/internal/service"
	"github.com/sxtnflur/ar-api/internal/storage/postgres"
	"github.com/sxtnflur/ar-api/internal/storage/s3"
)

// @title AR API
// @version 1.0
// @description Backend для Telegram Mini App с медиа-коллекциями
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// БД
	db, err := postgres.New(ctx, cfg.DB.DSN(), logger)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer db.Close()

	// Блоб-хранилище
	fileStorage, err := s3.New(s3.Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Endpoint:        cfg.S3.Endpoint,
		Domain:          cfg.Domain,
	})
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	// Сервисы
	uow := postgres.NewUnitOfWork(db)
	telegramService := service.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramBotUsername)
	authService := service.NewAuthService(cfg.AuthSecretKey)
	qrService := service.NewQRCodeService()

	authUseCase := service.NewAuthUseCase(telegramService, authService, uow, logger)
	mediaUseCase := service.NewMediaUseCase(uow, fileStorage, telegramService, qrService, logger)

	// Обработчик
	h := handler.NewHandler(authUseCase, mediaUseCase, authService, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))

	// Настройка CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://web.telegram.org", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Авторизация
	auth := r.Group("/auth")
	{
		auth.POST("/create_tokens", h.CreateTokens)
		auth.PUT("/refresh_token", h.RefreshTokens)
	}

	// Коллекции
	collections := r.Group("/collections")
	{
		collections.Use(h.AuthMiddleware())
		collections.POST("", h.CreateCollection)
		collections.GET("/my", h.GetMyCollections)
		collections.GET("/:id", h.GetCollection)
		collections.PATCH("/:id", h.UpdateCollectionName)
		collections.DELETE("/:id", h.DeleteCollection)
		collections.POST("/:id/media_blocks", h.SendMedia)
		collections.GET("/:id/only_blocks", h.GetCollectionBlocks)
		collections.PATCH("/media_blocks/:block_id", h.PatchMediaBlock)
		collections.DELETE("/media_blocks/:block_id", h.DeleteMediaBlock)
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("server starting", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
