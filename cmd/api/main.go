package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arisvieira/aris-api/internal/api/routes"
	"github.com/arisvieira/aris-api/internal/api/user"
	"github.com/arisvieira/aris-api/internal/config"
	"github.com/arisvieira/aris-api/internal/db"
	"github.com/arisvieira/aris-api/internal/logging"
)

// @title Aris API
// @version 1.0
// @description A user-account API with bearer-token authentication
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	database := db.Connect(cfg.Database)
	defer database.Close()

	db.RunMigrations(cfg.Database.DSN())

	repo := user.NewMySQLRepository(database)
	router := routes.SetupRoutes(cfg, repo, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starts server in a goroutine
	go func() {
		log.Printf("Server running on port %d", cfg.Server.Port)
		err := server.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting the server: %v", err)
		}
	}()

	// channel to capture quit signals (e.g. CTRL+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error on server shutdown: %v", err)
	}

	log.Println("Server shut down successfully")
}
