package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/4GeeksAcademy/Place-Between-Daniel/cache"
	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/db"
	"github.com/4GeeksAcademy/Place-Between-Daniel/mailer"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "placebetween",
	Short: "Place Between wellbeing backend",
	Long: `Place Between tracks day and night sessions, emotion check-ins and
activity completions, and serves the daily and weekly mirror summaries.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(versionCmd)
}

// app holds what every command needs once config, logging and storage are up.
type app struct {
	cfg *config.Config
	svc *services.Service
}

func (a *app) close() {
	if err := cache.Close(); err != nil {
		utils.Logger.Warn("redis_close_failed", zap.Error(err))
	}
	if a.svc != nil && a.svc.DB != nil {
		if sqlDB, err := a.svc.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = utils.Logger.Sync()
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	utils.InitLogger(cfg.LogFile, cfg.AppDebug)
	utils.InitMetrics()

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := cache.InitRedis(cfg.Redis, utils.Logger); err != nil {
		// the app runs without redis; caching and shared rate limits are skipped
		utils.Logger.Warn("redis_unavailable", zap.Error(err))
	}
	m, err := mailer.FromConfig(ctx, cfg.Mail)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, svc: services.New(conn, m, cfg)}, nil
}
