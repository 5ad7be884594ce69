package backtest_test

import (
	"context"
	"testing"

	"github.com/mvaldes/aurum/internal/backtest"
	"github.com/mvaldes/aurum/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepEvents() []domain.Event {
	var events []domain.Event
	for i := 0; i < 10; i++ {
		outcome := domain.SideUp
		if i%3 == 0 {
			outcome = domain.SideDown
		}
		events = append(events, upEvent("e", outcome, pricePoint(10, 0.55, 0.50)))
	}
	return events
}

func TestSweep_GridShape(t *testing.T) {
	rows := backtest.Sweep(context.Background(), sweepEvents(),
		[]float64{0.60, 0.70}, []float64{0.02, 0.05, 0.10}, 1.0)

	require.Len(t, rows, 6)
	// Orden determinista: prob externo, edge interno.
	assert.Equal(t, 0.60, rows[0].ProbUp)
	assert.Equal(t, 0.02, rows[0].EdgeThreshold)
	assert.Equal(t, 0.70, rows[5].ProbUp)
	assert.Equal(t, 0.10, rows[5].EdgeThreshold)
}

func TestSweep_DefaultRanges(t *testing.T) {
	rows := backtest.Sweep(context.Background(), sweepEvents(), nil, nil, 1.0)
	assert.Len(t, rows, len(backtest.DefaultProbRange())*len(backtest.DefaultEdgeRange()))
}

func TestSweep_Deterministic(t *testing.T) {
	events := sweepEvents()
	a := backtest.Sweep(context.Background(), events, []float64{0.70}, []float64{0.05}, 1.0)
	b := backtest.Sweep(context.Background(), events, []float64{0.70}, []float64{0.05}, 1.0)
	assert.Equal(t, a, b)
}

func TestBestByROI_RequiresMinTrades(t *testing.T) {
	rows := []backtest.SweepRow{
		{ProbUp: 0.60, EdgeThreshold: 0.02, Trades: 3, ROI: 9.0},  // pocos trades
		{ProbUp: 0.70, EdgeThreshold: 0.05, Trades: 8, ROI: 0.20},
		{ProbUp: 0.80, EdgeThreshold: 0.10, Trades: 7, ROI: 0.35},
	}

	best, ok := backtest.BestByROI(rows)
	require.True(t, ok)
	assert.Equal(t, 0.80, best.ProbUp)
	assert.Equal(t, 0.35, best.ROI)
}

func TestBestByROI_NoneQualify(t *testing.T) {
	rows := []backtest.SweepRow{{Trades: 2, ROI: 1.0}}
	_, ok := backtest.BestByROI(rows)
	assert.False(t, ok)
}

func TestBestByRiskRatio(t *testing.T) {
	rows := []backtest.SweepRow{
		{ProbUp: 0.60, Trades: 10, RiskRatio: 0.4},
		{ProbUp: 0.70, Trades: 10, RiskRatio: 0.9},
	}

	best, ok := backtest.BestByRiskRatio(rows)
	require.True(t, ok)
	assert.Equal(t, 0.70, best.ProbUp)
}
