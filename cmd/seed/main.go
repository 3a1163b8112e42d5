package main

import (
	"context"
	"flag"
	"log"
	"os"

	"roomnest/internal/auth"
	"roomnest/internal/config"
	"roomnest/internal/db"
	"roomnest/internal/model"
	"roomnest/internal/repository"
	"roomnest/internal/service"
)

// Admin identities are provisioned out of band with this tool; the public
// registration endpoint only accepts student and owner roles.
func main() {
	username := flag.String("username", "admin", "admin display name")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(nil)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, nil)

	admin, err := authService.ProvisionAdmin(context.Background(), *username, *email, *password)
	if err != nil {
		log.Fatalf("Failed to provision admin: %v", err)
	}

	log.Printf("Admin %s provisioned (id %s)", admin.Email, admin.ID)
}
