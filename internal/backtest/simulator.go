package backtest

// simulator.go — loop principal del backtest sobre eventos ya resueltos.
//
// Por cada evento, cada observación de precio se evalúa con la política de
// decisión; cada trade se liquida inmediatamente contra el resultado
// conocido del evento. No hay posiciones vivas entre eventos: el ciclo por
// evento es OBSERVADO → DECIDIDO → LIQUIDADO, y el siguiente evento empieza
// limpio. El orden de eventos y observaciones se respeta tal cual llega —
// ninguna aleatorización.
//
// El simulador es defensivo: los eventos inutilizables (sin settlement, sin
// precios, sin predicción, fallback, baja confianza) se saltan y se cuentan,
// nunca abortan la run completa.

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldes/aurum/internal/domain"
)

// Params configura una run de simulación.
type Params struct {
	EdgeThreshold     float64
	Stake             float64
	MaxTradesPerEvent int
	// TradeInterval evalúa solo una de cada N observaciones (1 = todas).
	TradeInterval int
	DirectionLock bool
	// MinConfidence descarta eventos cuya predicción tenga
	// max(p, 1-p) < MinConfidence. 0 desactiva el filtro.
	MinConfidence float64
}

// DefaultParams devuelve la configuración de referencia: edge 5%, $1 por
// trade, un trade por evento.
func DefaultParams() Params {
	return Params{
		EdgeThreshold:     0.05,
		Stake:             1.0,
		MaxTradesPerEvent: 1,
		TradeInterval:     1,
	}
}

// Run simula la política de trading sobre los eventos dados y agrega el
// resultado. Determinista: mismos eventos y misma fuente → mismo resultado.
func Run(ctx context.Context, events []domain.Event, source ProbabilitySource, params Params) domain.BacktestResult {
	if params.TradeInterval < 1 {
		params.TradeInterval = 1
	}

	var trades []domain.TradeRecord
	var skips domain.SkipCounts
	totalEvents := 0

	for _, event := range events {
		switch {
		case !event.Settled() && event.Outcome != "":
			// El evento reclama un resultado que no es ninguno de los dos
			// lados: inconsistencia de settlement. Se salta, nunca se fabrica.
			slog.Warn("skipping event with inconsistent settlement",
				"slug", event.Slug,
				"outcome", string(event.Outcome),
				"err", domain.ErrSettlementInconsistency,
			)
			skips.BadSettlement++
			continue
		case event.Outcome == "":
			skips.NoOutcome++
			continue
		case !event.HasPrices():
			skips.NoPrices++
			continue
		}

		pred, ok := source.ProbabilityFor(ctx, event)
		if !ok {
			skips.NoPrediction++
			continue
		}
		if pred.IsFallback() {
			slog.Debug("skipping event with fallback prediction",
				"slug", event.Slug,
				"reason", pred.Reason,
			)
			skips.Fallback++
			continue
		}
		if params.MinConfidence > 0 {
			c := pred.ProbabilityUp
			if c < 0.5 {
				c = 1 - c
			}
			if c < params.MinConfidence {
				skips.LowConfidence++
				continue
			}
		}

		totalEvents++
		tradesThisEvent := 0

		for i, p := range event.Prices {
			if tradesThisEvent >= params.MaxTradesPerEvent {
				break
			}
			if i%params.TradeInterval != 0 {
				continue
			}
			// Pre-filtro de precios extremos: evita evaluar observaciones
			// que la política rechazaría por el guard degenerado.
			if p.PriceUp <= minEntryPrice || p.PriceUp >= maxEntryPrice {
				continue
			}
			if p.PriceDown <= minEntryPrice || p.PriceDown >= maxEntryPrice {
				continue
			}

			decision := Decide(pred.ProbabilityUp, p.PriceUp, p.PriceDown,
				params.EdgeThreshold, params.Stake, params.DirectionLock)
			if decision == nil {
				continue
			}

			trade := materialize(event, p.Timestamp, pred.ProbabilityUp, p, *decision)
			trade.Settle(event.Outcome)
			trades = append(trades, trade)
			tradesThisEvent++
		}
	}

	result := Summarize(trades)
	result.RunID = uuid.New().String()
	result.TotalEvents = totalEvents
	result.Skipped = skips
	return result
}

// materialize construye el registro del trade en el momento de la decisión.
func materialize(event domain.Event, ts time.Time, modelProbUp float64, p domain.PricePoint, d TradeIntent) domain.TradeRecord {
	return domain.TradeRecord{
		ID:              uuid.New().String(),
		EventSlug:       event.Slug,
		EventTitle:      event.Title,
		Timestamp:       ts,
		Side:            d.Side,
		EntryPrice:      d.EntryPrice,
		ModelProbUp:     modelProbUp,
		MarketPriceUp:   p.PriceUp,
		MarketPriceDown: p.PriceDown,
		Edge:            d.Edge,
		Stake:           d.Stake,
		Shares:          d.Shares,
	}
}
