package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go-ipconf/internal/config"
	"go-ipconf/internal/db"
	"go-ipconf/internal/logger"
	"go-ipconf/internal/poller"
	"go-ipconf/internal/web"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Logger.Sync()

	if err := db.InitDB(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		logger.Logger.Fatal("Database init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start background SNMP poller
	go poller.StartBackgroundPolling(ctx, cfg.SNMP)

	app := fiber.New(fiber.Config{
		Views:                 web.NewEngine(),
		BodyLimit:             cfg.Web.BodyLimit,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	web.SetupRoutes(app, cfg.SNMP)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.Logger.Info("Server running", zap.String("url", "http://"+cfg.Web.Addr()))
	if err := app.Listen(cfg.Web.Addr()); err != nil {
		logger.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
