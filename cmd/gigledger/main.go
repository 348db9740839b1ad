package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/gigledger/docs"
	"github.com/kirinyoku/gigledger/internal/app"
	"github.com/kirinyoku/gigledger/internal/config"
	"github.com/spf13/pflag"
)

// @title GigLedger API
// @version 1.0
// @description Concert lifecycle, tiered ticket sales and one-time payout settlement.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	var (
		envFile  string
		logLevel string
	)

	flags := pflag.NewFlagSet("gigledger", pflag.ExitOnError)
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := config.New(envFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
