package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/adistaps/simola-backend/internal/config"
	"github.com/adistaps/simola-backend/internal/handler"
	"github.com/adistaps/simola-backend/internal/middleware"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/internal/repository"
	"github.com/adistaps/simola-backend/internal/service"
	"github.com/adistaps/simola-backend/pkg/database"
	"github.com/adistaps/simola-backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)
	meiliClient := connectMeili(cfg.MeiliSearchHost, cfg.MeiliMasterKey)

	photoStorage, err := storage.NewCloudinaryStorage(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	searchService := service.NewSearchService(meiliClient)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo, searchService, redisClient)
	importService := service.NewImportService(reportService)
	exportService := service.NewExportService(reportRepo, userRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, photoStorage, cfg.CloudinaryUploadFolder)

	authHandler := handler.NewAuthHandler(authService, userService, redisClient)
	adminHandler := handler.NewAdminHandler(userService)
	profileHandler := handler.NewProfileHandler(userService)
	reportHandler := handler.NewReportHandler(reportService, searchService)
	importHandler := handler.NewImportHandler(importService)
	exportHandler := handler.NewExportHandler(exportService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	liveHandler := handler.NewLiveHandler(redisClient)

	router := gin.Default()
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (tidak perlu auth)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
	// Protected routes (perlu auth)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/reports", reportHandler.CreateReport)
		protected.GET("/reports", reportHandler.GetAllReports)
		protected.GET("/reports/stats", reportHandler.GetReportStats)
		protected.GET("/reports/search", reportHandler.SearchReports)
		protected.GET("/reports/live", liveHandler.HandleWebSocket)
		protected.GET("/reports/:id", reportHandler.GetReport)
		protected.PATCH("/reports/:id", reportHandler.UpdateReport)
		protected.PATCH("/reports/:id/status", reportHandler.UpdateReportStatus)
		protected.DELETE("/reports/:id", reportHandler.DeleteReport)

		protected.POST("/reports/import", importHandler.ImportReports)
		protected.GET("/reports/import/template", importHandler.DownloadTemplate)

		export := protected.Group("/export")
		{
			export.GET("/reports", exportHandler.ExportReports)
			export.GET("/users", authMiddleware.RequireAdmin(), exportHandler.ExportUsers)
		}

		protected.POST("/feedback", feedbackHandler.CreateFeedback)
		protected.GET("/feedback", feedbackHandler.GetAllFeedback)
		protected.GET("/feedback/stats", feedbackHandler.GetFeedbackStats)

		profile := protected.Group("/profile")
		{
			profile.GET("/me", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/users", adminHandler.GetAllUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
		}
	}

	// Job pembersih foto feedback yatim (background)
	go func() {
		ticker := time.NewTicker(cfg.PhotoCleanupInterval)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("Running orphan photo cleanup...")
			if err := feedbackService.CleanupOrphanPhotos(context.Background()); err != nil {
				log.Printf("Error cleaning up orphan photos: %v", err)
			} else {
				log.Println("Orphan photo cleanup completed.")
			}
		}
	}()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, cache and live feed disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, cache and live feed disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, cache and live feed disabled: %v", err)
		return nil
	}
	return client
}

func connectMeili(host, masterKey string) meilisearch.ServiceManager {
	if host == "" {
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(masterKey))
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := strings.Split(allowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Profile{},
		&model.Report{},
		&model.Feedback{},
		&model.FeedbackPhoto{},
	)
}

func seedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Administrator sistem"},
		{Name: model.RolePetugas, Description: "Petugas lapangan"},
		{Name: model.RoleDispatcher, Description: "Operator call center"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@simola110.id").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@simola110.id",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	adminProfile := model.Profile{
		UserID: adminUser.ID,
		Nama:   "Administrator",
	}

	if err := db.Create(&adminProfile).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@simola110.id")
	log.Println("   Password: admin123")

	return nil
}
