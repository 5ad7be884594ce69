package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del backtester.
type Config struct {
	Backtest BacktestConfig `yaml:"backtest"`
	Model    ModelConfig    `yaml:"model"`
	Data     DataConfig     `yaml:"data"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// BacktestConfig controla la política de trading simulada.
type BacktestConfig struct {
	EdgeThreshold     float64 `yaml:"edge_threshold"`       // edge mínimo (estricto) para tradear
	StakeUSD          float64 `yaml:"stake_usd"`            // importe fijo por trade
	MaxTradesPerEvent int     `yaml:"max_trades_per_event"`
	TradeInterval     int     `yaml:"trade_interval"`       // evaluar 1 de cada N observaciones
	DirectionLock     bool    `yaml:"direction_lock"`       // solo el lado que implica el modelo
	MinConfidence     float64 `yaml:"min_confidence"`       // 0 desactiva el filtro
}

// ModelConfig controla el pipeline de estimación de probabilidad.
type ModelConfig struct {
	HorizonDays int `yaml:"horizon_days"` // horizonte de la etiqueta (días)
	Workers     int `yaml:"workers"`      // paralelismo del batch de predicciones
}

// DataConfig localiza los snapshots de datos en disco.
type DataConfig struct {
	EventsPath  string `yaml:"events_path"`
	SignalsPath string `yaml:"signals_path"`
}

// StorageConfig controla dónde se persisten los resultados.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve la configuración por defecto, sin leer ningún archivo.
// Útil cuando no existe config.yaml: todo es ajustable por flags.
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Backtest.EdgeThreshold <= 0 {
		cfg.Backtest.EdgeThreshold = 0.05
	}
	if cfg.Backtest.StakeUSD <= 0 {
		cfg.Backtest.StakeUSD = 1.0
	}
	if cfg.Backtest.MaxTradesPerEvent <= 0 {
		cfg.Backtest.MaxTradesPerEvent = 1
	}
	if cfg.Backtest.TradeInterval <= 0 {
		cfg.Backtest.TradeInterval = 1
	}
	if cfg.Model.HorizonDays <= 0 {
		cfg.Model.HorizonDays = 1
	}
	if cfg.Model.Workers <= 0 {
		cfg.Model.Workers = 4
	}
	if cfg.Data.EventsPath == "" {
		cfg.Data.EventsPath = "data/events.json"
	}
	if cfg.Data.SignalsPath == "" {
		cfg.Data.SignalsPath = "data/signals.json"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "aurum.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
