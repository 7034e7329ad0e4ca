// @title MCQ Creator API
// @version 1.0
// @description Generates multiple choice quizzes from uploaded documents.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mcq-creator/cmd/api/docs"
	"mcq-creator/internal/app"
	"mcq-creator/internal/config"
	"mcq-creator/internal/handler"
	"mcq-creator/internal/logger"
	"mcq-creator/internal/middleware"
	"mcq-creator/internal/web"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Redis is optional; without it downloads use the CSV embedded in responses
	cacheAdapter, redisClient := app.ConnectCache(context.Background(), cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// The response template is loaded once here; failing to load it is fatal
	quizService, err := app.NewQuizService(cfg, cacheAdapter, os.Stdout)
	if err != nil {
		appLogger.Fatal("Failed to initialize quiz service", zap.Error(err))
	}

	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	fiberApp := fiber.New(fiber.Config{
		AppName:      "mcqgen",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.BodyLimit(),
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(recover.New(recover.Config{EnableStackTrace: true}))
	fiberApp.Use(middleware.RequestLogger())
	fiberApp.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	fiberApp.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	handler.SetupRoutes(fiberApp, quizHandler, healthHandler)
	fiberApp.Use("/", web.Handler())

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
