package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/engine"
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/game/wheel"
	"github.com/cloudstok/flash-roulette-backend/internal/http-server/handlers/history"
	"github.com/cloudstok/flash-roulette-backend/internal/jobs"
	"github.com/cloudstok/flash-roulette-backend/internal/ledger"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/logger/sl"
	"github.com/cloudstok/flash-roulette-backend/internal/repository"
	"github.com/cloudstok/flash-roulette-backend/internal/session"
	"github.com/cloudstok/flash-roulette-backend/internal/storage/mysql"
	wshandler "github.com/cloudstok/flash-roulette-backend/internal/ws/handler"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting flash roulette engine", slog.String("env", cfg.Env))

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("failed to open settlement store", sl.Err(err))
		os.Exit(1)
	}

	if err = db.Ping(); err != nil {
		log.Error("failed to reach settlement store", sl.Err(err))
		os.Exit(1)
	}

	dbhandler := mysql.New(db)

	settlementRepo := repository.NewSettlementRepository(*dbhandler)
	if err = settlementRepo.InitSchema(); err != nil {
		log.Error("failed to init settlement schema", sl.Err(err))
		os.Exit(1)
	}

	sessionCache, err := session.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Error("failed to connect to session cache", sl.Err(err))
		os.Exit(1)
	}

	table := payout.NewTable(config.DefaultPayoutSchedule)
	log.Info("payout table loaded",
		slog.String("version", table.Version()),
		slog.Int("terms", table.Size()))

	queue := make(jobs.JobQueue, 64)
	jobs.NewWorkerPool(cfg.WorkerPoolSize, queue).Start()
	scheduler := jobs.NewScheduler(queue, quartz.NewReal())

	ledgerClient := ledger.NewClient(log, cfg.LedgerBaseURL, cfg.LedgerTimeout)

	hub := wshandler.NewHub(log)

	betEngine := engine.New(
		log,
		table,
		wheel.NewWheel(),
		sessionCache,
		ledgerClient,
		settlementRepo,
		hub,
		scheduler,
		cfg.SettlementDelay,
	)
	hub.Bind(betEngine)

	historyHandler := history.NewHistory(log, settlementRepo, table)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/history", historyHandler.List())
	router.Get("/bet/detail", historyHandler.Detail())

	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/ws", hub.HandleConnection)

	var group errgroup.Group

	group.Go(func() error {
		log.Info("history api listening", slog.String("address", cfg.HTTPAddress))

		return http.ListenAndServe(cfg.HTTPAddress, router)
	})

	group.Go(func() error {
		log.Info("websocket transport listening", slog.String("address", cfg.WSAddress))

		return http.ListenAndServe(cfg.WSAddress, wsMux)
	})

	if err = group.Wait(); err != nil {
		log.Error("server stopped", sl.Err(err))
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
