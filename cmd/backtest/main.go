package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/mvaldes/aurum/config"
	"github.com/mvaldes/aurum/internal/adapters/fixtures"
	"github.com/mvaldes/aurum/internal/adapters/notify"
	"github.com/mvaldes/aurum/internal/adapters/storage"
	"github.com/mvaldes/aurum/internal/backtest"
	"github.com/mvaldes/aurum/internal/domain"
	"github.com/mvaldes/aurum/internal/features"
	"github.com/mvaldes/aurum/internal/model"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	eventsPath := flag.String("events", "", "path to events JSON (overrides config)")
	signalsPath := flag.String("signals", "", "path to signals JSON (overrides config)")
	prob := flag.Float64("prob", 0.60, "fixed model probability of Up (ignored with -model)")
	edge := flag.Float64("edge", 0, "edge threshold (overrides config)")
	bet := flag.Float64("bet", 0, "stake in $ per trade (overrides config)")
	maxTrades := flag.Int("max-trades", 0, "max trades per event (overrides config)")
	interval := flag.Int("interval", 0, "evaluate 1 of every N price observations (overrides config)")
	sweep := flag.Bool("sweep", false, "run the prob × edge parameter sweep and exit")
	useModel := flag.Bool("model", false, "derive probabilities from the regression model per date")
	strict := flag.Bool("strict", false, "only trade the side the model implies")
	minConf := flag.Float64("min-conf", -1, "minimum model confidence, 0-1 (overrides config)")
	table := flag.Bool("table", false, "print per-event and summary tables")
	verbose := flag.Bool("verbose", false, "set log level to debug; with -table also print per-trade detail")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg := loadConfig(*configPath)

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	applyFlagOverrides(cfg, *eventsPath, *signalsPath, *edge, *bet, *maxTrades, *interval, *strict, *minConf)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	events, err := fixtures.NewEventsFile(cfg.Data.EventsPath).FetchEvents(ctx)
	if err != nil {
		slog.Error("failed to load events", "err", err, "path", cfg.Data.EventsPath)
		os.Exit(1)
	}
	slog.Info("events loaded", "count", len(events), "path", cfg.Data.EventsPath)

	console := notify.NewConsole(*table, *verbose)

	if *sweep {
		rows := backtest.Sweep(ctx, events, nil, nil, cfg.Backtest.StakeUSD)
		console.PrintSweep(rows)
		return
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	params := backtest.Params{
		EdgeThreshold:     cfg.Backtest.EdgeThreshold,
		Stake:             cfg.Backtest.StakeUSD,
		MaxTradesPerEvent: cfg.Backtest.MaxTradesPerEvent,
		TradeInterval:     cfg.Backtest.TradeInterval,
		DirectionLock:     cfg.Backtest.DirectionLock,
		MinConfidence:     cfg.Backtest.MinConfidence,
	}

	var source backtest.ProbabilitySource
	var probLabel string
	if *useModel {
		source, err = buildModelSource(ctx, cfg, store, events)
		if err != nil {
			slog.Error("failed to build model source", "err", err)
			os.Exit(1)
		}
		probLabel = "model-driven probabilities"
	} else {
		source = backtest.FixedSource{ProbUp: *prob}
		probLabel = fmt.Sprintf("fixed p(Up)=%.2f", *prob)
	}

	result := backtest.Run(ctx, events, source, params)

	console.PrintParams(params, probLabel)
	if err := console.Report(ctx, result); err != nil {
		slog.Warn("report error", "err", err)
	}

	if err := store.SaveRun(ctx, result); err != nil {
		slog.Warn("failed to persist run", "err", err, "run_id", result.RunID)
	} else {
		slog.Info("run persisted", "run_id", result.RunID, "trades", result.TotalTrades)
	}
}

// loadConfig carga el YAML si existe; sin archivo se usan los defaults,
// todo es ajustable por flags.
func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); err != nil {
		slog.Info("config file not found, using defaults", "path", path)
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", path)
		os.Exit(1)
	}
	return cfg
}

func applyFlagOverrides(cfg *config.Config, events, signals string, edge, bet float64, maxTrades, interval int, strict bool, minConf float64) {
	if events != "" {
		cfg.Data.EventsPath = events
	}
	if signals != "" {
		cfg.Data.SignalsPath = signals
	}
	if edge > 0 {
		cfg.Backtest.EdgeThreshold = edge
	}
	if bet > 0 {
		cfg.Backtest.StakeUSD = bet
	}
	if maxTrades > 0 {
		cfg.Backtest.MaxTradesPerEvent = maxTrades
	}
	if interval > 0 {
		cfg.Backtest.TradeInterval = interval
	}
	if strict {
		cfg.Backtest.DirectionLock = true
	}
	if minConf >= 0 {
		cfg.Backtest.MinConfidence = minConf
	}
}

// buildModelSource entrena (o recupera de caché) una predicción por cada
// fecha objetivo presente en los eventos y devuelve una fuente respaldada
// por el predictor: las fechas del batch salen de la caché memoizada y
// cualquier fecha nueva se predice bajo demanda. Las predicciones nuevas
// se memoizan también en SQLite.
func buildModelSource(ctx context.Context, cfg *config.Config, store *storage.SQLiteStorage, events []domain.Event) (backtest.ProbabilitySource, error) {
	signals, err := fixtures.LoadSignalsFile(cfg.Data.SignalsPath)
	if err != nil {
		return nil, err
	}

	seed, err := store.LoadPredictions(ctx)
	if err != nil {
		slog.Warn("failed to load prediction cache, starting cold", "err", err)
		seed = nil
	}
	cache := model.NewMemoryCache(seed)

	predictor := model.NewPredictor(
		signals,
		signals,
		features.DefaultRegistry(),
		features.DefaultAssignments(),
		cfg.Model.HorizonDays,
		cache,
	)

	dates := targetDates(events)
	slog.Info("predicting target dates",
		"dates", len(dates),
		"cached", len(seed),
		"workers", cfg.Model.Workers,
	)

	preds := predictor.PredictBatch(ctx, dates, cfg.Model.Workers)

	for _, p := range preds {
		if _, cached := seed[p.TargetDate]; cached {
			continue
		}
		if err := store.SavePrediction(ctx, p); err != nil {
			slog.Warn("failed to persist prediction", "err", err, "target_date", p.TargetDate)
		}
	}

	return backtest.PredictorSource{PredictFn: predictor.PredictDate}, nil
}

// targetDates devuelve las fechas objetivo únicas de los eventos, ordenadas.
func targetDates(events []domain.Event) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range events {
		if e.TargetDate == "" || seen[e.TargetDate] {
			continue
		}
		seen[e.TargetDate] = true
		dates = append(dates, e.TargetDate)
	}
	sort.Strings(dates)
	return dates
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
