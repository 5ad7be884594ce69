package storage

// sqlite.go — persistencia de runs de backtest y caché de predicciones.
//
// Estrategia:
//   - `runs`: una fila-resumen por ejecución, suficiente para comparar
//     configuraciones sin rehidratar los trades.
//   - `trades`: el detalle completo de cada run, enlazado por run_id.
//   - `predictions`: memoización por fecha objetivo. Entrenar un modelo por
//     fecha es lo caro del pipeline; re-ejecutar un backtest con la caché
//     poblada no entrena nada.
//   - Prune automático al arrancar: runs (y sus trades) > 90d.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvaldes/aurum/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen por ejecución de backtest
CREATE TABLE IF NOT EXISTS runs (
    run_id         TEXT PRIMARY KEY,
    executed_at    DATETIME NOT NULL,
    total_events   INTEGER  NOT NULL DEFAULT 0,
    total_trades   INTEGER  NOT NULL DEFAULT 0,
    winning_trades INTEGER  NOT NULL DEFAULT 0,
    losing_trades  INTEGER  NOT NULL DEFAULT 0,
    win_rate       REAL     NOT NULL DEFAULT 0,
    total_pnl      REAL     NOT NULL DEFAULT 0,
    total_invested REAL     NOT NULL DEFAULT 0,
    roi            REAL     NOT NULL DEFAULT 0,
    max_drawdown   REAL     NOT NULL DEFAULT 0,
    risk_ratio     REAL     NOT NULL DEFAULT 0,
    skipped        INTEGER  NOT NULL DEFAULT 0
);

-- Detalle de trades, una fila por posición simulada
CREATE TABLE IF NOT EXISTS trades (
    id               TEXT PRIMARY KEY,
    run_id           TEXT     NOT NULL,
    event_slug       TEXT     NOT NULL,
    event_title      TEXT,
    decided_at       DATETIME NOT NULL,
    side             TEXT     NOT NULL,
    entry_price      REAL     NOT NULL,
    model_prob_up    REAL     NOT NULL,
    market_price_up  REAL     NOT NULL,
    market_price_dn  REAL     NOT NULL,
    edge             REAL     NOT NULL,
    stake            REAL     NOT NULL,
    shares           REAL     NOT NULL,
    outcome          TEXT     NOT NULL,
    settlement_price REAL     NOT NULL,
    pnl              REAL     NOT NULL,
    is_win           INTEGER  NOT NULL DEFAULT 0
);

-- Predicciones memoizadas, una fila por fecha objetivo
CREATE TABLE IF NOT EXISTS predictions (
    target_date TEXT PRIMARY KEY,
    prob_up     REAL NOT NULL,
    direction   TEXT NOT NULL,
    confidence  REAL NOT NULL,
    method      TEXT NOT NULL,
    reason      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_at      ON runs(executed_at DESC);
CREATE INDEX IF NOT EXISTS idx_trades_run   ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_trades_slug  ON trades(event_slug);
`

// runs: 90 días de histórico bastan para comparar configuraciones
const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRun persiste el resumen de la run y todos sus trades en una transacción.
func (s *SQLiteStorage) SaveRun(ctx context.Context, result domain.BacktestResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs
			(run_id, executed_at, total_events, total_trades, winning_trades,
			 losing_trades, win_rate, total_pnl, total_invested, roi,
			 max_drawdown, risk_ratio, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.RunID,
		time.Now().UTC(),
		result.TotalEvents,
		result.TotalTrades,
		result.WinningTrades,
		result.LosingTrades,
		result.WinRate,
		result.TotalPnL,
		result.TotalInvested,
		result.ROI,
		result.MaxDrawdown,
		result.RiskRatio,
		result.Skipped.Total(),
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades
			(id, run_id, event_slug, event_title, decided_at, side, entry_price,
			 model_prob_up, market_price_up, market_price_dn, edge, stake,
			 shares, outcome, settlement_price, pnl, is_win)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range result.Trades {
		isWin := 0
		if t.IsWin {
			isWin = 1
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			result.RunID,
			t.EventSlug,
			t.EventTitle,
			t.Timestamp.UTC(),
			string(t.Side),
			t.EntryPrice,
			t.ModelProbUp,
			t.MarketPriceUp,
			t.MarketPriceDown,
			t.Edge,
			t.Stake,
			t.Shares,
			string(t.Outcome),
			t.SettlementPrice,
			t.PnL,
			isWin,
		); err != nil {
			return fmt.Errorf("storage.SaveRun: insert trade %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return nil
}

// SavePrediction memoiza (upsert) la predicción de una fecha objetivo.
// Las predicciones fallback también se guardan: volver a intentar una fecha
// sin datos suficientes produce el mismo fallback, pero más lento.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, p domain.Prediction) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (target_date, prob_up, direction, confidence, method, reason)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(target_date) DO UPDATE SET
			prob_up    = excluded.prob_up,
			direction  = excluded.direction,
			confidence = excluded.confidence,
			method     = excluded.method,
			reason     = excluded.reason
	`,
		p.TargetDate, p.ProbabilityUp, string(p.Direction), p.Confidence, p.Method, p.Reason,
	); err != nil {
		return fmt.Errorf("storage.SavePrediction: upsert %s: %w", p.TargetDate, err)
	}
	return nil
}

// LoadPredictions devuelve todas las predicciones memoizadas por fecha.
func (s *SQLiteStorage) LoadPredictions(ctx context.Context) (map[string]domain.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target_date, prob_up, direction, confidence, method, reason
		FROM predictions
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadPredictions: query: %w", err)
	}
	defer rows.Close()

	preds := make(map[string]domain.Prediction)
	for rows.Next() {
		var p domain.Prediction
		var direction string
		if err := rows.Scan(
			&p.TargetDate, &p.ProbabilityUp, &direction,
			&p.Confidence, &p.Method, &p.Reason,
		); err != nil {
			return nil, fmt.Errorf("storage.LoadPredictions: scan row: %w", err)
		}
		p.Direction = domain.Side(direction)
		p.ProbabilityDown = 1.0 - p.ProbabilityUp
		preds[p.TargetDate] = p
	}

	return preds, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina runs antiguos y sus trades para mantener la DB ligera.
// Las predicciones no expiran: son deterministas por fecha.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx, `DELETE FROM trades WHERE run_id IN (SELECT run_id FROM runs WHERE executed_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE executed_at < ?`, cutoff)
}
