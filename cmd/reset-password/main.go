package main

import (
	"flag"
	"log"

	"go-pos-backend/internal/config"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/pkg/database"
)

func main() {
	username := flag.String("user", model.DefaultAdminUsername, "username to reset")
	password := flag.String("password", model.DefaultAdminPassword, "new password")
	flag.Parse()

	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	defer database.Close(db)

	// 3. Reset
	auth := service.NewAuthService(repository.NewUserRepo(db), cfg.JWTSecret, cfg.JWTTTL)
	if err := auth.ResetPassword(*username, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %v", *username, err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *username)
}
