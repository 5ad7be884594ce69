package backtest

// sweep.go — barrido de parámetros: simula todas las combinaciones de
// probabilidad fija × umbral de edge y resume cada una en una fila. Útil
// para mapear la sensibilidad de la estrategia sin entrenar ningún modelo.

import (
	"context"

	"github.com/mvaldes/aurum/internal/domain"
)

// SweepRow es el resultado de una combinación del barrido.
type SweepRow struct {
	ProbUp        float64
	EdgeThreshold float64
	Events        int
	Trades        int
	Wins          int
	WinRate       float64
	TotalPnL      float64
	ROI           float64
	MaxDrawdown   float64
	RiskRatio     float64
}

// DefaultProbRange son las probabilidades fijas del barrido por defecto.
func DefaultProbRange() []float64 {
	return []float64{0.40, 0.45, 0.50, 0.55, 0.60, 0.65, 0.70, 0.75, 0.80}
}

// DefaultEdgeRange son los umbrales de edge del barrido por defecto.
func DefaultEdgeRange() []float64 {
	return []float64{0.02, 0.05, 0.08, 0.10, 0.15, 0.20, 0.25}
}

// Sweep corre el backtest con un trade por evento para cada combinación
// probabilidad × edge. El orden de filas es determinista: probabilidades
// en orden externo, edges en orden interno.
func Sweep(ctx context.Context, events []domain.Event, probRange, edgeRange []float64, stake float64) []SweepRow {
	if len(probRange) == 0 {
		probRange = DefaultProbRange()
	}
	if len(edgeRange) == 0 {
		edgeRange = DefaultEdgeRange()
	}

	rows := make([]SweepRow, 0, len(probRange)*len(edgeRange))
	for _, prob := range probRange {
		for _, edge := range edgeRange {
			params := DefaultParams()
			params.EdgeThreshold = edge
			params.Stake = stake

			r := Run(ctx, events, FixedSource{ProbUp: prob}, params)
			rows = append(rows, SweepRow{
				ProbUp:        prob,
				EdgeThreshold: edge,
				Events:        r.TotalEvents,
				Trades:        r.TotalTrades,
				Wins:          r.WinningTrades,
				WinRate:       r.WinRate,
				TotalPnL:      r.TotalPnL,
				ROI:           r.ROI,
				MaxDrawdown:   r.MaxDrawdown,
				RiskRatio:     r.RiskRatio,
			})
		}
	}
	return rows
}

// minSweepTrades es el mínimo de trades para considerar una combinación
// representativa al elegir las mejores.
const minSweepTrades = 5

// BestByROI devuelve la fila con mejor ROI entre las combinaciones con
// suficientes trades. ok=false si ninguna califica.
func BestByROI(rows []SweepRow) (SweepRow, bool) {
	return best(rows, func(a, b SweepRow) bool { return a.ROI > b.ROI })
}

// BestByRiskRatio devuelve la fila con mejor ratio riesgo-retorno.
func BestByRiskRatio(rows []SweepRow) (SweepRow, bool) {
	return best(rows, func(a, b SweepRow) bool { return a.RiskRatio > b.RiskRatio })
}

func best(rows []SweepRow, better func(a, b SweepRow) bool) (SweepRow, bool) {
	var top SweepRow
	found := false
	for _, r := range rows {
		if r.Trades < minSweepTrades {
			continue
		}
		if !found || better(r, top) {
			top = r
			found = true
		}
	}
	return top, found
}
