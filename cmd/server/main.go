package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/config"
	"github.com/sideorder/sideorder/internal/database"
	"github.com/sideorder/sideorder/pkg/logger"

	menuH "github.com/sideorder/sideorder/internal/menu/handler"
	menuRepoPkg "github.com/sideorder/sideorder/internal/menu/repository"
	menuUCPkg "github.com/sideorder/sideorder/internal/menu/usecase"

	sessionH "github.com/sideorder/sideorder/internal/session/handler"
	sessionRepoPkg "github.com/sideorder/sideorder/internal/session/repository"
	sessionUCPkg "github.com/sideorder/sideorder/internal/session/usecase"

	orderH "github.com/sideorder/sideorder/internal/order/handler"
	orderRepoPkg "github.com/sideorder/sideorder/internal/order/repository"
	orderUCPkg "github.com/sideorder/sideorder/internal/order/usecase"

	settingH "github.com/sideorder/sideorder/internal/setting/handler"
	settingRepoPkg "github.com/sideorder/sideorder/internal/setting/repository"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	development := cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development"
	appLogger := logger.NewZapLogger(&cfg.Logger, development)
	defer appLogger.Sync()

	// 3. Open the store and bring the schema up to date
	db, err := database.NewSQLite(&cfg.SQLite)
	if err != nil {
		appLogger.Fatal("Could not open sqlite store", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Opened sqlite store", zap.String("path", cfg.SQLite.Path))

	if err := database.Initialize(db, appLogger); err != nil {
		appLogger.Fatal("Could not initialize database", zap.Error(err))
	}

	// 4. Initialize Repositories
	menuRepo := menuRepoPkg.NewSQLiteRepository(db)
	sessionRepo := sessionRepoPkg.NewSQLiteRepository(db)
	orderRepo := orderRepoPkg.NewSQLiteRepository(db)
	settingRepo := settingRepoPkg.NewSQLiteRepository(db)

	// 5. Initialize UseCases
	menuUC := menuUCPkg.NewMenuUseCase(menuRepo, appLogger)
	sessionUC := sessionUCPkg.NewSessionUseCase(sessionRepo, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, appLogger)

	// 6. Initialize Handlers
	menuHandler := menuH.NewMenuHandler(menuUC, sessionUC, appLogger)
	sessionHandler := sessionH.NewSessionHandler(sessionUC, menuUC, orderUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	settingHandler := settingH.NewSettingHandler(settingRepo, appLogger)

	// 7. Start HTTP Server
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api/v1")
	menuHandler.RegisterRoutes(api)
	sessionHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	settingHandler.RegisterRoutes(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: engine,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
