package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-backend/internal/config"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/server"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// 3. Seed default admin user
	if err := repository.NewUserRepo(db).SeedAdmin(); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Routes
	app := server.New(cfg, db, wsHub)

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	wsHub.Stop()
	if err := database.Close(db); err != nil {
		log.Printf("Warning: failed to close database: %v", err)
	}

	log.Println("Server exited")
}
