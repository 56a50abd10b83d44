package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	_ "fieldserv/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fieldserv/internal/auth"
	"fieldserv/internal/cache"
	"fieldserv/internal/config"
	"fieldserv/internal/db"
	"fieldserv/internal/handler"
	"fieldserv/internal/model"
	"fieldserv/internal/repository"
	"fieldserv/internal/router"
	"fieldserv/internal/service"
	"fieldserv/internal/storage"
)

// @title Field Service Records API
// @version 1.0
// @description Record-keeping API for field service visits with JWT authentication and photo attachments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Photo{},
			&model.Record{},
			&model.Location{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.Record{},
		&model.Photo{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	}

	photoStore, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	recordRepo := repository.NewRecordRepository(gormDB)
	photoRepo := repository.NewPhotoRepository(gormDB)

	// Provision the bootstrap admin before the server accepts requests
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := provisionAdmin(context.Background(), userRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("provision admin: %v", err)
		}
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	locationService := service.NewLocationService(locationRepo)
	recordService := service.NewRecordService(recordRepo, locationRepo)
	photoService := service.NewPhotoService(recordRepo, photoRepo, photoStore, cfg.MaxUploadBytes)

	guard := auth.NewGuard(userService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	locationHandler := handler.NewLocationHandler(locationService)
	recordHandler := handler.NewRecordHandler(recordService)
	photoHandler := handler.NewPhotoHandler(photoService)

	// Register routes
	router.Register(
		e,
		cfg,
		guard,
		authHandler,
		userHandler,
		locationHandler,
		recordHandler,
		photoHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// provisionAdmin upserts the configured bootstrap admin. An existing user
// with the same email gets its password reset and role forced to ADMIN, the
// same way the deployment has always behaved.
func provisionAdmin(ctx context.Context, users repository.UserRepository, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = string(hashed)
		existing.Role = model.RoleAdmin
		return users.Update(ctx, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return users.Create(ctx, &model.User{
			Email:        email,
			Name:         "Admin",
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
		})
	default:
		return err
	}
}
