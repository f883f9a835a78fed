package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/An-Array/SM-Backend/internal/api/controller"
	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/api/service"
	"github.com/An-Array/SM-Backend/internal/config"
	"github.com/An-Array/SM-Backend/internal/db"
	"github.com/An-Array/SM-Backend/internal/logger"
	"github.com/An-Array/SM-Backend/internal/server"
	"github.com/An-Array/SM-Backend/internal/telemetry"
	"github.com/An-Array/SM-Backend/internal/token"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	// Initialize the database (migrations run inside Open)
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer pool.Close()

	// Create repositories
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)

	// Create services
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, tokens)
	postService := service.NewPostService(postRepo)
	voteService := service.NewVoteService(postRepo, voteRepo)

	// Create controllers
	userController := controller.NewUserController(userService)
	postController := controller.NewPostController(postService)
	voteController := controller.NewVoteController(voteService)

	// Create the Gin-based server
	srv := server.NewServer(cfg, tokens, userRepo, userController, postController, voteController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
