package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/mvaldes/aurum/internal/adapters/notify"
	"github.com/mvaldes/aurum/internal/backtest"
	"github.com/mvaldes/aurum/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSettledTrade(slug string, side, outcome domain.Side, probUp float64) domain.TradeRecord {
	t := domain.TradeRecord{
		ID:              "t-" + slug,
		EventSlug:       slug,
		EventTitle:      "Gold Up or Down?",
		Timestamp:       time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC),
		Side:            side,
		EntryPrice:      0.55,
		ModelProbUp:     probUp,
		MarketPriceUp:   0.55,
		MarketPriceDown: 0.50,
		Edge:            probUp - 0.55,
		Stake:           1.0,
		Shares:          1.0 / 0.55,
	}
	t.Settle(outcome)
	return t
}

func makeReportResult() domain.BacktestResult {
	trades := []domain.TradeRecord{
		makeSettledTrade("gc-up-or-down-on-january-8-2026", domain.SideUp, domain.SideUp, 0.70),
		makeSettledTrade("gc-up-or-down-on-january-9-2026", domain.SideUp, domain.SideDown, 0.65),
	}
	r := backtest.Summarize(trades)
	r.RunID = "run-test"
	r.TotalEvents = 2
	return r
}

func TestConsole_Report_Summary(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, false)

	err := c.Report(context.Background(), makeReportResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run-test")
	assert.Contains(t, out, "Trades: 2 (1 W / 1 L)")
	assert.Contains(t, out, "win rate 50.0%")
	assert.Contains(t, out, "direction accuracy 1/2")
}

func TestConsole_Report_TableMode(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, true)

	err := c.Report(context.Background(), makeReportResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "gc-up-or-down-on-january-8-2026")
	assert.Contains(t, out, "WIN")
	assert.Contains(t, out, "LOSS")
}

func TestConsole_Report_NoTrades(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, false)

	err := c.Report(context.Background(), domain.BacktestResult{RunID: "empty"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sin trades")
}

func TestConsole_Report_SkipBreakdown(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, false)

	r := domain.BacktestResult{
		RunID:   "skips",
		Skipped: domain.SkipCounts{NoOutcome: 2, Fallback: 1},
	}
	require.NoError(t, c.Report(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "no-outcome:2")
	assert.Contains(t, out, "fallback:1")
}

func TestConsole_PrintSweep(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, false)

	rows := []backtest.SweepRow{
		{ProbUp: 0.60, EdgeThreshold: 0.05, Trades: 10, Wins: 7, WinRate: 0.7, TotalPnL: 2.5, ROI: 0.25, RiskRatio: 0.8},
		{ProbUp: 0.70, EdgeThreshold: 0.10, Trades: 6, Wins: 3, WinRate: 0.5, TotalPnL: -0.5, ROI: -0.08, RiskRatio: -0.1},
	}
	c.PrintSweep(rows)

	out := buf.String()
	assert.Contains(t, out, "2 combinaciones")
	assert.Contains(t, out, "Best ROI")
	assert.Contains(t, out, "prob=0.60 edge=0.05")
}

func TestConsole_PrintSweep_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, false)

	c.PrintSweep(nil)
	assert.Contains(t, buf.String(), "sin resultados")
}
