package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quiz-platform/internal/auth"
	"quiz-platform/internal/cache"
	"quiz-platform/internal/config"
	"quiz-platform/internal/db"
	"quiz-platform/internal/event"
	"quiz-platform/internal/handlers"
	"quiz-platform/internal/middleware"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"
	"quiz-platform/internal/service"
	"quiz-platform/internal/storage"
	"quiz-platform/internal/ws"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	database := client.Database(cfg.MongoDatabase)

	// RabbitMQ, Redis and MinIO are optional collaborators. Without them the
	// service still serves every route; events are dropped, the leaderboard
	// is computed on every request and uploads are rejected.
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" {
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Printf("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			defer publisher.Close()
		}
	}

	var leaderboardCache *cache.Cache
	if cfg.RedisAddr != "" {
		leaderboardCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, 5*time.Minute)
		if err != nil {
			log.Printf("Redis unavailable, caching disabled: %v", err)
		} else {
			defer leaderboardCache.Close()
		}
	}

	var files storage.FileStore
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			BaseURL:   cfg.MinioBaseURL,
		})
		if err != nil {
			log.Printf("MinIO unavailable, uploads disabled: %v", err)
		} else {
			files = store
		}
	}

	hub := ws.NewHub()
	defer hub.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)

	userRepo := repository.NewUserRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	issueRepo := repository.NewIssueRepository(database)
	testimonialRepo := repository.NewTestimonialRepository(database)
	messageRepo := repository.NewMessageRepository(database)

	userService := service.NewUserService(userRepo, tokens, cfg.DefaultAvatarURL)
	quizService := service.NewQuizService(quizRepo)
	recordService := service.NewRecordService(recordRepo, quizRepo, publisher)
	analyticsService := service.NewAnalyticsService(recordRepo, quizRepo, userRepo, leaderboardCache)
	issueService := service.NewIssueService(issueRepo, quizRepo, userRepo)
	testimonialService := service.NewTestimonialService(testimonialRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, hub, publisher)

	userHandler := handlers.NewUserHandler(userService, files)
	quizHandler := handlers.NewQuizHandler(quizService, files)
	recordHandler := handlers.NewRecordHandler(recordService, analyticsService)
	issueHandler := handlers.NewIssueHandler(issueService)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService)
	messageHandler := handlers.NewMessageHandler(messageService, hub)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authUser := middleware.Auth(tokens, "")
	authAdmin := middleware.Auth(tokens, models.RoleAdmin)

	user := router.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.GET("/me", authUser, userHandler.Me)
		user.GET("/all", authAdmin, userHandler.GetAll)
		user.PUT("/name", authUser, userHandler.UpdateName)
		user.PUT("/password", authUser, userHandler.ChangePassword)
		user.POST("/avatar", authUser, userHandler.UploadAvatar)
	}

	quiz := router.Group("/quiz")
	{
		quiz.GET("", quizHandler.GetAll)
		quiz.GET("/topic/:topic", quizHandler.GetByTopic)
		quiz.GET("/:quizId", authUser, quizHandler.GetByID)
		quiz.POST("", authAdmin, quizHandler.Create)
		quiz.PUT("/:quizId", authAdmin, quizHandler.Update)
		quiz.DELETE("/:quizId", authAdmin, quizHandler.Delete)
		quiz.POST("/:quizId/category", authAdmin, quizHandler.AddCategory)
		quiz.POST("/:quizId/category/:categoryId/question", authAdmin, quizHandler.AddQuestion)
		quiz.POST("/:quizId/logo", authAdmin, quizHandler.UploadLogo)
	}

	record := router.Group("/quiz-record")
	{
		record.POST("/add", authUser, recordHandler.Add)
		record.GET("/analytics", authUser, recordHandler.Analytics)
		record.GET("/admin/analytics", authAdmin, recordHandler.AdminAnalytics)
		record.GET("/leaderboard/:topicCategory", authUser, recordHandler.Leaderboard)
		record.GET("/quiz/:quizId/:categoryId/analytics", authAdmin, recordHandler.CategoryAnalytics)
	}

	issue := router.Group("/issue")
	{
		issue.POST("/add", authUser, issueHandler.Create)
		issue.GET("/mine", authUser, issueHandler.GetMine)
		issue.GET("/all", authAdmin, issueHandler.GetAll)
		issue.PUT("/:issueId/status", authAdmin, issueHandler.UpdateStatus)
		issue.DELETE("/:issueId", authAdmin, issueHandler.Delete)
	}

	testimonial := router.Group("/testimonial")
	{
		testimonial.GET("/active", testimonialHandler.GetActive)
		testimonial.POST("/add", authUser, testimonialHandler.Upsert)
		testimonial.PUT("/update", authUser, testimonialHandler.Update)
		testimonial.GET("/mine", authUser, testimonialHandler.GetMine)
		testimonial.GET("/all", authAdmin, testimonialHandler.GetAll)
		testimonial.PUT("/:testimonialId/status", authAdmin, testimonialHandler.ToggleStatus)
		testimonial.DELETE("/:testimonialId", authAdmin, testimonialHandler.Delete)
	}

	chat := router.Group("/chat")
	{
		chat.POST("/send", authUser, messageHandler.Send)
		chat.GET("/messages", authUser, messageHandler.GetAll)
		chat.GET("/ws", messageHandler.Serve)
	}

	log.Printf("Quiz platform listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
