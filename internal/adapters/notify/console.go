package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mvaldes/aurum/internal/backtest"
	"github.com/mvaldes/aurum/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Reporter escribiendo el informe a stdout.
type Console struct {
	out     io.Writer
	table   bool
	verbose bool
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(table, verbose bool) *Console {
	return &Console{out: os.Stdout, table: table, verbose: verbose}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, table, verbose bool) *Console {
	return &Console{out: w, table: table, verbose: verbose}
}

// PrintParams imprime la configuración de la run antes de los resultados.
func (c *Console) PrintParams(params backtest.Params, probLabel string) {
	fmt.Fprintf(c.out, "\n=== BACKTEST — %s ===\n", probLabel)
	fmt.Fprintf(c.out, "  edge threshold: %.2f | stake: $%.2f/trade | max trades/event: %d\n",
		params.EdgeThreshold, params.Stake, params.MaxTradesPerEvent)
	if params.TradeInterval > 1 {
		fmt.Fprintf(c.out, "  interval: 1 de cada %d observaciones\n", params.TradeInterval)
	}
	if params.DirectionLock {
		fmt.Fprintln(c.out, "  direction lock: solo el lado que implica el modelo")
	}
	if params.MinConfidence > 0 {
		fmt.Fprintf(c.out, "  min confidence: %.2f\n", params.MinConfidence)
	}
}

// Report imprime el resultado completo del backtest.
func (c *Console) Report(_ context.Context, r domain.BacktestResult) error {
	c.printSummary(r)

	if c.table && len(r.Trades) > 0 {
		c.printEventTable(r)
		if c.verbose {
			c.printTradeTable(r)
		}
	}

	if len(r.EquityCurve) >= 2 {
		c.printEquity(r)
	}
	return nil
}

// printSummary imprime las estadísticas agregadas de la run.
func (c *Console) printSummary(r domain.BacktestResult) {
	fmt.Fprintf(c.out, "\n  Run %s\n", r.RunID)
	fmt.Fprintf(c.out, "  Events: %d evaluated, %d skipped", r.TotalEvents, r.Skipped.Total())
	if s := r.Skipped; s.Total() > 0 {
		var parts []string
		if s.NoOutcome > 0 {
			parts = append(parts, fmt.Sprintf("no-outcome:%d", s.NoOutcome))
		}
		if s.NoPrices > 0 {
			parts = append(parts, fmt.Sprintf("no-prices:%d", s.NoPrices))
		}
		if s.NoPrediction > 0 {
			parts = append(parts, fmt.Sprintf("no-prediction:%d", s.NoPrediction))
		}
		if s.Fallback > 0 {
			parts = append(parts, fmt.Sprintf("fallback:%d", s.Fallback))
		}
		if s.LowConfidence > 0 {
			parts = append(parts, fmt.Sprintf("low-conf:%d", s.LowConfidence))
		}
		if s.BadSettlement > 0 {
			parts = append(parts, fmt.Sprintf("bad-settlement:%d", s.BadSettlement))
		}
		fmt.Fprintf(c.out, " (%s)", strings.Join(parts, " "))
	}
	fmt.Fprintln(c.out)

	if r.TotalTrades == 0 {
		fmt.Fprintln(c.out, "\n  Sin trades: ninguna observación superó el umbral de edge.")
		return
	}

	fmt.Fprintf(c.out, "  Trades: %d (%d W / %d L)  win rate %.1f%%\n",
		r.TotalTrades, r.WinningTrades, r.LosingTrades, r.WinRate*100)
	fmt.Fprintf(c.out, "  PnL:    $%+.4f sobre $%.2f invertidos  (ROI %+.2f%%)\n",
		r.TotalPnL, r.TotalInvested, r.ROI*100)
	fmt.Fprintf(c.out, "  Avg:    $%+.4f/trade  win $%+.4f  loss $%+.4f\n",
		r.AvgPnLPerTrade, r.AvgPnLPerWin, r.AvgPnLPerLoss)
	fmt.Fprintf(c.out, "  Best:   $%+.4f  worst: $%+.4f\n", r.MaxSingleWin, r.MaxSingleLoss)
	fmt.Fprintf(c.out, "  Risk:   max drawdown $%.4f  risk ratio %.3f\n", r.MaxDrawdown, r.RiskRatio)

	if correct, total := directionAccuracy(r.Trades); total > 0 {
		fmt.Fprintf(c.out, "  Model:  direction accuracy %d/%d (%.1f%%)\n",
			correct, total, float64(correct)/float64(total)*100)
	}

	if ups, downs := outcomeDistribution(r.Trades); ups+downs > 0 {
		fmt.Fprintf(c.out, "  Outcomes: %d Up / %d Down (%.1f%% Up)\n",
			ups, downs, float64(ups)/float64(ups+downs)*100)
	}
}

// printEventTable imprime una fila por evento con el PnL agregado.
func (c *Console) printEventTable(r domain.BacktestResult) {
	type eventAgg struct {
		slug    string
		trades  int
		wins    int
		pnl     float64
		outcome domain.Side
	}

	var order []string
	agg := make(map[string]*eventAgg)
	for _, t := range r.Trades {
		a, ok := agg[t.EventSlug]
		if !ok {
			a = &eventAgg{slug: t.EventSlug, outcome: t.Outcome}
			agg[t.EventSlug] = a
			order = append(order, t.EventSlug)
		}
		a.trades++
		if t.IsWin {
			a.wins++
		}
		a.pnl += t.PnL
	}

	fmt.Fprintln(c.out)
	table := tablewriter.NewWriter(c.out)
	table.Header("Event", "Outcome", "Trades", "Wins", "PnL")
	for _, slug := range order {
		a := agg[slug]
		table.Append(
			truncate(a.slug, 40),
			string(a.outcome),
			fmt.Sprintf("%d", a.trades),
			fmt.Sprintf("%d", a.wins),
			fmt.Sprintf("$%+.4f", a.pnl),
		)
	}
	table.Render()
}

// printTradeTable imprime el detalle trade a trade.
func (c *Console) printTradeTable(r domain.BacktestResult) {
	fmt.Fprintln(c.out)
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Event", "Side", "Entry", "ProbUp", "Edge", "Shares", "Result", "PnL")
	for i, t := range r.Trades {
		result := "LOSS"
		if t.IsWin {
			result = "WIN"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(t.EventSlug, 32),
			string(t.Side),
			fmt.Sprintf("%.3f", t.EntryPrice),
			fmt.Sprintf("%.3f", t.ModelProbUp),
			fmt.Sprintf("%.3f", t.Edge),
			fmt.Sprintf("%.2f", t.Shares),
			result,
			fmt.Sprintf("$%+.4f", t.PnL),
		)
	}
	table.Render()
}

// printEquity imprime la curva de PnL acumulado como sparkline de texto.
func (c *Console) printEquity(r domain.BacktestResult) {
	fmt.Fprintf(c.out, "\n  Equity: %s  (final $%+.4f)\n", sparkline(r.EquityCurve), r.TotalPnL)
}

// PrintSweep imprime la tabla del barrido de parámetros y las mejores
// combinaciones por ROI y risk ratio.
func (c *Console) PrintSweep(rows []backtest.SweepRow) {
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "\n  Sweep sin resultados.")
		return
	}

	fmt.Fprintf(c.out, "\n=== PARAMETER SWEEP — %d combinaciones ===\n\n", len(rows))

	table := tablewriter.NewWriter(c.out)
	table.Header("ProbUp", "Edge", "Trades", "WinRate", "PnL", "ROI", "MaxDD", "Risk")
	for _, row := range rows {
		table.Append(
			fmt.Sprintf("%.2f", row.ProbUp),
			fmt.Sprintf("%.2f", row.EdgeThreshold),
			fmt.Sprintf("%d", row.Trades),
			fmt.Sprintf("%.1f%%", row.WinRate*100),
			fmt.Sprintf("$%+.4f", row.TotalPnL),
			fmt.Sprintf("%+.2f%%", row.ROI*100),
			fmt.Sprintf("$%.4f", row.MaxDrawdown),
			fmt.Sprintf("%.3f", row.RiskRatio),
		)
	}
	table.Render()

	if best, ok := backtest.BestByROI(rows); ok {
		fmt.Fprintf(c.out, "\n  Best ROI:  prob=%.2f edge=%.2f → ROI %+.2f%% (%d trades)\n",
			best.ProbUp, best.EdgeThreshold, best.ROI*100, best.Trades)
	}
	if best, ok := backtest.BestByRiskRatio(rows); ok {
		fmt.Fprintf(c.out, "  Best risk: prob=%.2f edge=%.2f → ratio %.3f (%d trades)\n",
			best.ProbUp, best.EdgeThreshold, best.RiskRatio, best.Trades)
	}
	fmt.Fprintln(c.out)
}

// --- helpers ---

// directionAccuracy cuenta cuántas veces el lado implícito del modelo
// coincidió con el resultado real, independientemente de si se tradeó ese lado.
func directionAccuracy(trades []domain.TradeRecord) (correct, total int) {
	for _, t := range trades {
		if !t.Outcome.Valid() {
			continue
		}
		implied := domain.SideUp
		if t.ModelProbUp < 0.5 {
			implied = domain.SideDown
		}
		total++
		if implied == t.Outcome {
			correct++
		}
	}
	return
}

// outcomeDistribution cuenta la distribución de resultados entre los
// eventos tradeados (un evento por slug).
func outcomeDistribution(trades []domain.TradeRecord) (ups, downs int) {
	seen := make(map[string]bool)
	for _, t := range trades {
		if seen[t.EventSlug] {
			continue
		}
		seen[t.EventSlug] = true
		switch t.Outcome {
		case domain.SideUp:
			ups++
		case domain.SideDown:
			downs++
		}
	}
	return
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline proyecta la curva sobre 8 niveles de bloque.
func sparkline(curve []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range curve {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	var sb strings.Builder
	for _, v := range curve {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkLevels)-1))
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
