package app

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/go-todo/config"
	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/events"
	"github.com/biosecret/go-todo/handlers"
	"github.com/biosecret/go-todo/logging"
	"github.com/biosecret/go-todo/middleware"
	"github.com/biosecret/go-todo/router"
	"github.com/biosecret/go-todo/services"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Deps là các thành phần dùng chung để dựng Fiber app
type Deps struct {
	Config    config.Config
	DB        *sql.DB
	Publisher events.Publisher
	Logger    *log.Logger
}

// NewApp dựng Fiber app với middleware và route đầy đủ
func NewApp(deps Deps) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "go-todo",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler(deps.Logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))

	metrics := middleware.NewMetrics()
	metrics.Registry().MustRegister(collectors.NewDBStatsCollector(deps.DB, "todo"))
	app.Use(metrics.Handler())
	app.Get("/metrics", metrics.Expose())

	h := &handlers.Handler{
		DB:        deps.DB,
		Todos:     services.NewTodoService(deps.DB, deps.Publisher, deps.Logger),
		Users:     services.NewUserService(deps.DB, cfg.BcryptCost, deps.Logger),
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    deps.Logger,
	}
	router.SetupRoutes(app, h, middleware.JWTMiddleware(cfg.JWTSecret))

	config.AddSwaggerRoutes(app)
	return app
}

// SetupAndRunApp khởi động ứng dụng Fiber và chờ tín hiệu tắt
func SetupAndRunApp() error {
	cfg, err := config.LoadENV()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, database.Options{
		Driver:          cfg.DatabaseDriver,
		URI:             cfg.DatabaseURI,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	cancel()
	if err != nil {
		return err
	}
	// Đảm bảo kết nối với cơ sở dữ liệu được đóng sau khi ứng dụng kết thúc
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "err", err)
		}
		logger.Info("database connection closed")
	}()
	logger.Info("connected to database", "driver", cfg.DatabaseDriver)

	var publisher events.Publisher = events.Noop{}
	if cfg.MQTTURL != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTTURL, logger)
		if err != nil {
			return err
		}
		publisher = mqttPublisher
		logger.Info("publishing todo events to MQTT")
	}
	defer publisher.Close()

	app := NewApp(Deps{Config: cfg, DB: db, Publisher: publisher, Logger: logger})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
