package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parceltrack/cmd"
	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	appLogger := cmd.NewLogger(configs, os.Stdout)

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, appLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedSuperAdmin(ctx, &app, configs)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}
	startWebServer(ctx, server, configs.HTTPPort, appLogger)
}

func getConfigs() cmd.Config {
	// A missing .env file is fine; the environment may already be populated.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func seedSuperAdmin(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) {
	if configs.SuperAdminEmail == "" {
		return
	}
	seed, err := commands.NewSeedSuperAdminCommand(configs.SuperAdminEmail, configs.SuperAdminPassword)
	if err != nil {
		log.Fatalf("Invalid super admin configuration: %v", err)
	}
	if err = app.CreateSeedSuperAdminCommandHandler().Handle(ctx, seed); err != nil {
		log.Fatalf("Error seeding super admin: %v", err)
	}
}

func startWebServer(ctx context.Context, server *httpadapter.Server, port string, appLogger *slog.Logger) {
	e := httpadapter.NewEcho(server)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	appLogger.InfoContext(ctx, "HTTP server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
	appLogger.InfoContext(shutdownCtx, "HTTP server stopped")
}
