package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"guild-logger/internal/audit"
	"guild-logger/internal/auth"
	"guild-logger/internal/channels"
	"guild-logger/internal/config"
	"guild-logger/internal/discord"
	"guild-logger/internal/httpapi"
	"guild-logger/internal/maintenance"
	"guild-logger/internal/menu"
	"guild-logger/internal/render"
	"guild-logger/internal/reporting"
	"guild-logger/internal/router"
	"guild-logger/internal/settings"
	"guild-logger/pkg/logger"
	"guild-logger/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the gateway and run the operator API",
	Long: `Connect to the Discord gateway, log events to each server's log channel and serve
the operator HTTP API until SIGINT or SIGTERM.

Environment variables:
  APP_ENV, APP_PORT        Environment and HTTP port
  DISCORD_TOKEN            Bot token
  DB_*                     Postgres connection and pool
  REDIS_HOST, REDIS_PORT   Negative channel cache
  JWT_*                    Operator API tokens
  SWEEP_SCHEDULE           Channel sweep cron spec (default: @every 1h)
  LOG_FILE                 Optional copy of the diagnostic log`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		return err
	}

	var logFile *lumberjack.Logger
	var extra []io.Writer
	if cfg.Log.File != "" {
		logFile, err = logger.NewFile(logger.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		})
		if err != nil {
			slog.Error("log file open failed", "err", err)
			return err
		}
		extra = append(extra, logFile)
	}
	log := logger.New(cfg.App.Env, extra...)
	slog.SetDefault(log)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.ShutdownFlush(ctx, 2*time.Second, logFile)
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		return err
	}

	db, err := utils.OpenPostgres(rootCtx, cfg.PostgresDSN(), utils.PostgresPoolConfig{
		MinConns: cfg.DB.MinConns,
		MaxConns: cfg.DB.MaxConns,
	})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		return err
	}
	defer db.Close()

	settingsRepo := settings.NewPostgresRepo(db.DB, cfg.DB.CommandTimeout)
	auditRepo := audit.NewPostgresRepo(db.DB, cfg.DB.CommandTimeout)
	if err := settingsRepo.EnsureSchema(rootCtx); err != nil {
		log.Error("settings schema failed", "err", err)
		return err
	}
	if err := auditRepo.EnsureSchema(rootCtx); err != nil {
		log.Error("audit schema failed", "err", err)
		return err
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{
		Addr:         cfg.RedisAddr(),
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Error("redis init failed", "err", err)
		return err
	}
	defer rdb.Close()

	auditSvc := audit.NewService(auditRepo)
	settingsSvc := settings.NewService(settingsRepo, settings.AuditAdapter{Audit: auditSvc}, log)
	statsSvc := reporting.NewService(reporting.NewMemoryRepo(time.Now()))

	session, err := discord.NewSession(cfg.Discord.Token, log)
	if err != nil {
		log.Error("discord init failed", "err", err)
		return err
	}
	self, err := session.User("@me", discordgo.WithContext(rootCtx))
	if err != nil {
		log.Error("discord identity failed", "err", err)
		return err
	}
	selfID, _ := strconv.ParseInt(self.ID, 10, 64)

	source := discord.NewChannelSource(session)
	resolver := channels.NewResolver(source, source, channels.NewRedisMissCache(rdb, cfg.Redis.ChannelMissTTL), log)

	rt := router.New(settingsSvc, resolver, render.NewFormatter(), discord.Sink{API: session}, log)
	rt.SelfID = selfID
	rt.Stats = router.StatsAdapter{Stats: statsSvc, Log: log}

	g, gctx := errgroup.WithContext(rootCtx)

	sweeper := maintenance.NewSweeper(settingsSvc, resolver, log)
	dispatcher := discord.NewDispatcher(gctx, rt, resolver, log)
	dispatcher.OnChannelDelete = sweeper.OnChannelDelete
	detach := dispatcher.Register(session)
	defer detach()

	menuHandler := menu.NewHandler(gctx, settingsSvc, resolver, Version, log)
	menuHandler.SourceURL = cfg.Discord.SourceURL
	session.AddHandler(menuHandler.Handle)

	if err := session.Open(); err != nil {
		log.Error("gateway connect failed", "err", err)
		return fmt.Errorf("open gateway: %w", err)
	}
	log.Info("gateway connected", "user_id", self.ID, "username", self.Username)

	commandGuild := ""
	if cfg.Discord.CommandGuildID != 0 {
		commandGuild = strconv.FormatInt(cfg.Discord.CommandGuildID, 10)
	}
	if _, err := session.ApplicationCommandBulkOverwrite(self.ID, commandGuild, menu.Commands()); err != nil {
		// The bot still logs events without its commands.
		log.Error("command registration failed", "err", err)
	}

	scheduler := maintenance.NewCron(log)
	if _, err := sweeper.Attach(gctx, scheduler, cfg.Sweep.Schedule); err != nil {
		log.Error("sweep schedule invalid", "schedule", cfg.Sweep.Schedule, "err", err)
		_ = session.Close()
		return err
	}
	scheduler.Start()

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, auth.RequireAccessToken(authManager), httpapi.Handlers{
		Settings: settingsSvc,
		Stats:    statsSvc,
		Audit:    auditSvc,
		Channels: resolver,
		Ping: func(ctx context.Context) error {
			return utils.HealthCheck(ctx, db.DB, 2*time.Second)
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		<-scheduler.Stop().Done()
		if err := session.Close(); err != nil {
			log.Error("gateway close failed", "err", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown failed", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("serve stopped", "err", err)
		return err
	}
	log.Info("shutdown complete")
	return nil
}
