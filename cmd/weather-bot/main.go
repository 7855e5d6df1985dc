package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/i474232898/weather-bot/internal/api/http"
	"github.com/i474232898/weather-bot/internal/chart"
	"github.com/i474232898/weather-bot/internal/config"
	"github.com/i474232898/weather-bot/internal/dialogue"
	"github.com/i474232898/weather-bot/internal/dispatcher"
	"github.com/i474232898/weather-bot/internal/flood"
	"github.com/i474232898/weather-bot/internal/forecast"
	"github.com/i474232898/weather-bot/internal/format"
	"github.com/i474232898/weather-bot/internal/geo"
	"github.com/i474232898/weather-bot/internal/lib/sl"
	"github.com/i474232898/weather-bot/internal/metrics"
	"github.com/i474232898/weather-bot/internal/preferences"
	"github.com/i474232898/weather-bot/internal/scheduler"
	"github.com/i474232898/weather-bot/internal/store"
	"github.com/i474232898/weather-bot/internal/transport/telegram"
	"github.com/i474232898/weather-bot/internal/weather/providers"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info("starting weather bot", slog.String("session_backend", cfg.Session.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Preference store.
	prefs, err := preferences.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open preference store", sl.Err(err))
		os.Exit(1)
	}
	defer prefs.Close()

	if err := preferences.Migrate(prefs.DB()); err != nil {
		log.Error("failed to migrate preference store", sl.Err(err))
		os.Exit(1)
	}

	m := metrics.New()

	var tasks []scheduler.Task

	// Dialogue sessions.
	var sessions dialogue.SessionRepository
	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("failed to connect to redis", sl.Err(err))
			os.Exit(1)
		}
		sessions = store.NewRedisStore(rdb, cfg.Session.TTL)
	case "badger":
		bs, err := store.OpenBadgerStore(cfg.Session.BadgerDir, cfg.Session.TTL)
		if err != nil {
			log.Error("failed to open session database", sl.Err(err))
			os.Exit(1)
		}
		defer bs.Close()
		sessions = bs
		tasks = append(tasks, scheduler.Task{
			Name: "sessions-gc",
			Run: func(context.Context) (int, error) {
				return bs.CollectGarbage()
			},
		})
	default:
		mem := store.NewMemoryStore()
		sessions = mem
		tasks = append(tasks, scheduler.Task{
			Name: "sessions",
			Run: func(context.Context) (int, error) {
				return mem.Sweep(cfg.Session.TTL), nil
			},
		})
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.Weather.HTTPTimeout}
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.Weather.APIKey, cfg.Weather.BaseURL, log, m)

	zones, err := geo.NewTZResolver(log)
	if err != nil {
		log.Error("failed to load timezone data", sl.Err(err))
		os.Exit(1)
	}
	places := geo.NewPlaceResolver(cfg.GeocoderAPIKey, log)

	charts, err := chart.NewRenderer(cfg.PlotDir)
	if err != nil {
		log.Error("failed to prepare plot directory", sl.Err(err))
		os.Exit(1)
	}
	tasks = append(tasks, scheduler.Task{
		Name: "plots",
		Run: func(context.Context) (int, error) {
			return charts.Sweep(time.Hour)
		},
	})

	forecasts := forecast.NewService(prefs, provider, format.NewDaysGenerator(zones, time.Now), charts, places, log)
	machine := dialogue.NewMachine(sessions, prefs, log, m)

	gate := flood.NewGate(cfg.Flood.Rate, cfg.Flood.Burst)
	tasks = append(tasks, scheduler.Task{
		Name: "flood",
		Run: func(context.Context) (int, error) {
			return gate.Sweep(cfg.HousekeepingInterval), nil
		},
	})

	b, err := bot.New(cfg.BotToken,
		bot.WithWorkers(cfg.Workers),
		bot.WithMiddlewares(telegram.FloodMiddleware(gate, m, log)),
	)
	if err != nil {
		log.Error("failed to create bot", sl.Err(err))
		os.Exit(1)
	}

	disp := dispatcher.New(machine, forecasts, telegram.NewClient(b), log, m)
	b.RegisterHandlerMatchFunc(func(*models.Update) bool { return true }, telegram.Handler(disp, log))

	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: telegram.MenuCommands()}); err != nil {
		log.Warn("failed to set command menu", sl.Err(err))
	}

	// Housekeeping.
	sched := scheduler.New(cfg.HousekeepingInterval, log, tasks...)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", sl.Err(err))
		os.Exit(1)
	}
	defer sched.Stop()

	// Ops API.
	app := httpapi.NewApp(prefs, m, cfg.LogLevel == "debug")
	go func() {
		if err := app.Listen(cfg.OpsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops server stopped", sl.Err(err))
		}
	}()

	log.Info("bot is polling for updates", slog.String("ops_addr", cfg.OpsAddr))
	b.Start(ctx)

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", sl.Err(err))
	}
}

func setupLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
