package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fieldserv/internal/config"
	"fieldserv/internal/db"
	"fieldserv/internal/model"
	"fieldserv/internal/repository"
)

// Development fixtures: a couple of staff logins and service sites so the
// API is usable right after `docker compose up`. Safe to run repeatedly.

type seedUser struct {
	Email    string
	Name     string
	Password string
	Role     model.Role
}

var seedUsers = []seedUser{
	{Email: "admin@example.com", Name: "Admin", Password: "admin123", Role: model.RoleAdmin},
	{Email: "maria@example.com", Name: "Maria Souza", Password: "staff123", Role: model.RoleStaff},
	{Email: "joao@example.com", Name: "João Lima", Password: "staff123", Role: model.RoleStaff},
}

var seedLocations = []model.Location{
	{Name: "Praça Central", Address: "Av. Principal 100", City: "Campinas"},
	{Name: "Terminal Norte", Address: "Rua das Flores 45", City: "Campinas"},
	{Name: "Parque Municipal", Address: "Rua do Parque 1", City: "Jundiaí"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Location{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)

	created, skipped, err := seedStaff(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Users: %d created, %d already present", created, skipped)

	locCreated, err := seedSites(ctx, locationRepo, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed locations: %v", err)
	}
	log.Printf("Locations: %d created", locCreated)

	log.Println("Seed completed successfully!")
}

// seedStaff creates the fixture users, leaving existing emails untouched so
// changed passwords survive a re-run.
func seedStaff(ctx context.Context, repo repository.UserRepository) (created, skipped int, err error) {
	for _, su := range seedUsers {
		_, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("error checking user %s: %w", su.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", su.Email, err)
		}
		if err := repo.Create(ctx, &model.User{
			Email:        su.Email,
			Name:         su.Name,
			PasswordHash: string(hashed),
			Role:         su.Role,
		}); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", su.Email, err)
		}
		created++
	}
	return created, skipped, nil
}

// seedSites creates fixture locations unless a location with the same name
// already exists.
func seedSites(ctx context.Context, repo repository.LocationRepository, gormDB *gorm.DB) (created int, err error) {
	for _, loc := range seedLocations {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Location{}).Where("name = ?", loc.Name).Count(&count).Error; err != nil {
			return created, fmt.Errorf("error checking location %s: %w", loc.Name, err)
		}
		if count > 0 {
			continue
		}
		loc := loc
		if err := repo.Create(ctx, &loc); err != nil {
			return created, fmt.Errorf("error creating location %s: %w", loc.Name, err)
		}
		created++
	}
	return created, nil
}
