package backtest

// stats.go — agregación de trades en estadísticas de rendimiento.
// Summarize es una función pura de la lista de trades: correrla dos veces
// sobre la misma lista produce exactamente el mismo resultado, y todo el
// agregado es recomputable desde los trades almacenados.

import (
	"math"

	"github.com/mvaldes/aurum/internal/domain"
)

// Summarize reduce los trades a un BacktestResult. Los campos de contexto
// de la run (RunID, TotalEvents, Skipped) los rellena el caller.
func Summarize(trades []domain.TradeRecord) domain.BacktestResult {
	result := domain.BacktestResult{
		Trades:      trades,
		TotalTrades: len(trades),
	}
	if len(trades) == 0 {
		return result
	}

	var winPnL, lossPnL float64
	result.MaxSingleWin = math.Inf(-1)
	result.MaxSingleLoss = math.Inf(1)

	for _, t := range trades {
		if t.IsWin {
			result.WinningTrades++
			winPnL += t.PnL
		} else {
			result.LosingTrades++
			lossPnL += t.PnL
		}
		result.TotalPnL += t.PnL
		result.TotalInvested += t.Stake
		result.MaxSingleWin = math.Max(result.MaxSingleWin, t.PnL)
		result.MaxSingleLoss = math.Min(result.MaxSingleLoss, t.PnL)
	}

	result.WinRate = float64(result.WinningTrades) / float64(len(trades))
	result.AvgPnLPerTrade = result.TotalPnL / float64(len(trades))
	if result.WinningTrades > 0 {
		result.AvgPnLPerWin = winPnL / float64(result.WinningTrades)
	}
	if result.LosingTrades > 0 {
		result.AvgPnLPerLoss = lossPnL / float64(result.LosingTrades)
	}
	if result.TotalInvested > 0 {
		result.ROI = result.TotalPnL / result.TotalInvested
	}

	result.EquityCurve, result.MaxDrawdown = equityCurve(trades)
	result.RiskRatio = riskRatio(trades)
	return result
}

// equityCurve devuelve el PnL acumulado en orden de generación y el máximo
// drawdown peak-to-trough sobre esa curva.
func equityCurve(trades []domain.TradeRecord) ([]float64, float64) {
	curve := make([]float64, 0, len(trades))
	equity, peak, maxDD := 0.0, 0.0, 0.0
	for _, t := range trades {
		equity += t.PnL
		curve = append(curve, equity)
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDD {
			maxDD = dd
		}
	}
	return curve, maxDD
}

// riskRatio devuelve mean(pnl)/std(pnl) — Sharpe simplificado: sin tasa
// libre de riesgo ni anualización. 0 con menos de 2 trades o varianza cero.
func riskRatio(trades []domain.TradeRecord) float64 {
	if len(trades) < 2 {
		return 0
	}
	mean := 0.0
	for _, t := range trades {
		mean += t.PnL
	}
	mean /= float64(len(trades))

	variance := 0.0
	for _, t := range trades {
		variance += (t.PnL - mean) * (t.PnL - mean)
	}
	std := math.Sqrt(variance / float64(len(trades)))
	if std == 0 {
		return 0
	}
	return mean / std
}
