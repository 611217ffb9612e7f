package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/auth"
	"healthoffice_backend/internal/config"
	"healthoffice_backend/internal/handlers"
	"healthoffice_backend/internal/logger"
	"healthoffice_backend/internal/middleware"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/internal/routes"
	"healthoffice_backend/internal/storage"
	"healthoffice_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env, logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := gormDB.AutoMigrate(&models.News{}, &models.Ita{}, &models.Link{}, &models.User{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		return gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	store, err := storage.NewLocalStore(storage.Config{BasePath: cfg.Storage.UploadDir})
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}
	logger.Info("File store initialized", "dir", cfg.Storage.UploadDir)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	gate := middleware.AdminGate(cfg.Auth.ProtectMutations, issuer)

	appHandlers, err := initializeHandlers(cfg, gormDB, store, issuer)
	if err != nil {
		return nil, err
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, gate, cfg.Storage.UploadDir)
	return ginRouter, nil
}

func initializeHandlers(cfg *config.Config, gormDB *gorm.DB, store storage.FileStore, issuer *auth.TokenIssuer) (*handlers.AppHandlers, error) {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	binder := attachments.NewBinder(store)

	newsRepo := repositories.NewNewsRepository(gormDB)
	itaRepo := repositories.NewItaRepository(gormDB)
	linkRepo := repositories.NewLinkRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)

	staff, err := repositories.NewStaffCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open staff collection: %w", err)
	}
	jobs, err := repositories.NewJobCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open jobs collection: %w", err)
	}
	activities, err := repositories.NewActivityCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open activities collection: %w", err)
	}
	downloads, err := repositories.NewDownloadCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open downloads collection: %w", err)
	}
	procurement, err := repositories.NewProcurementCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open procurement collection: %w", err)
	}
	donors, err := repositories.NewDonorCollection(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open donors collection: %w", err)
	}

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, userRepo, issuer),
		NewsHandler:        handlers.NewNewsHandler(baseHandler, newsRepo, binder),
		ItaHandler:         handlers.NewItaHandler(baseHandler, itaRepo, binder),
		LinkHandler:        handlers.NewLinkHandler(baseHandler, linkRepo, binder),
		StaffHandler:       handlers.NewStaffHandler(baseHandler, staff, binder),
		JobHandler:         handlers.NewJobHandler(baseHandler, jobs, binder),
		ActivityHandler:    handlers.NewActivityHandler(baseHandler, activities, binder),
		DownloadHandler:    handlers.NewDownloadHandler(baseHandler, downloads, binder),
		ProcurementHandler: handlers.NewProcurementHandler(baseHandler, procurement, binder),
		DonorHandler:       handlers.NewDonorHandler(baseHandler, donors, binder),
		UploadHandler:      handlers.NewUploadHandler(baseHandler, store),
	}, nil
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSizeMB << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	username := cfg.Auth.AdminUsername
	password := cfg.Auth.AdminPassword

	if username == "" || password == "" {
		logger.Warn("ADMIN_USERNAME or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var admin models.User
	result := db.Where("username = ?", username).First(&admin)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "username", username)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "username", username)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}
