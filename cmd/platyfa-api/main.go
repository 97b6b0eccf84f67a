package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/platyfa/platyfa-api/internal/app"
	"github.com/platyfa/platyfa-api/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var configPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "platyfa-api",
		Short:        "Companion API server for the Platyfa game",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, errLoad := config.Load(configPath)
			if errLoad != nil {
				return errLoad
			}
			setupLogging(cfg.Log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.RunServer(ctx, cfg)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, errLoad := config.Load(configPath)
			if errLoad != nil {
				return errLoad
			}
			setupLogging(cfg.Log)

			if errMigrate := app.Migrate(cfg); errMigrate != nil {
				return errMigrate
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func setupLogging(cfg config.LogConfig) {
	level, errParse := log.ParseLevel(cfg.Level)
	if errParse != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("exited")
	}
}
