package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/cli"
	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/insight"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/repository"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/alexanderramin/nutrimind/internal/state"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Environment overrides from ./.env are optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("NUTRIMIND_LOG_LEVEL"))}))

	// Determine DB path: env var or default ~/.nutrimind/nutrimind.db
	dbPath := os.Getenv("NUTRIMIND_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".nutrimind", "nutrimind.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and persisted state
	profiles := repository.NewSQLiteProfileRepo(database)
	foods := repository.NewSQLiteFoodLogRepo(database)
	water := repository.NewSQLiteWaterLogRepo(database)
	nutrients := repository.NewSQLiteNutrientLogRepo(database)
	states := repository.NewSQLiteStateRepo(database)

	insightCfg := insight.LoadConfig()
	cache := state.NewDailyCacheStore(states, insightCfg.SnapshotTTL, insightCfg.ResponseTTL)
	dismissals := state.NewDismissalStore(states, state.DismissalTTL)
	legacy := state.NewLegacyInsightsStore(states)
	collector := service.NewCollector(profiles, foods, water, nutrients, dismissals)

	// Wire the local model only when enabled
	llmCfg := llm.LoadConfig()
	var model llm.ModelProvider
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client := llm.NewOllamaClient(llmCfg, observer)
		model = llm.NewOllamaProvider(llmCfg, client, observer)
	}

	svc := service.NewInsightService(service.Deps{
		Profiles:   profiles,
		Foods:      foods,
		Water:      water,
		Nutrients:  nutrients,
		UoW:        db.NewSQLiteUnitOfWork(database),
		Generator:  insight.NewGenerator(insightCfg, collector, cache, model, logger),
		Cache:      cache,
		Dismissals: dismissals,
		Legacy:     legacy,
		Model:      model,
		ModelName:  llmCfg.Model,
		Narration:  insightCfg.Enabled && model != nil,
	}, service.NewLogUseCaseObserver(logger))

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Boot(bootCtx, time.Now()); err != nil {
		return fmt.Errorf("starting: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	app := &cli.App{
		Service: svc,
		Logger:  logger,
		Clock:   time.Now,
		APIAddr: os.Getenv("NUTRIMIND_API_ADDR"),
	}

	// Detect interactive terminal for pickers, spinners and the pull view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
