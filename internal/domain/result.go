package domain

// SkipCounts registra por qué se descartaron eventos durante un backtest.
// Se reportan en vez de abortar la run: un evento inutilizable no debe
// tumbar la simulación completa.
type SkipCounts struct {
	NoOutcome     int // sin resultado de settlement
	NoPrices      int // sin observaciones de precio
	NoPrediction  int // sin predicción para su fecha
	Fallback      int // predicción etiquetada como fallback
	LowConfidence int // confianza del modelo bajo el mínimo
	BadSettlement int // outcome que no coincide con ningún lado
}

// Total devuelve el número total de eventos descartados.
func (s SkipCounts) Total() int {
	return s.NoOutcome + s.NoPrices + s.NoPrediction + s.Fallback + s.LowConfidence + s.BadSettlement
}

// BacktestResult es el agregado de todos los trades de una configuración.
// Invariante: cada estadística derivada es recomputable de forma
// determinista a partir de Trades — el agregado no guarda estado propio.
type BacktestResult struct {
	RunID string

	TotalEvents   int     // eventos que produjeron al menos una evaluación
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64

	TotalPnL       float64
	TotalInvested  float64
	ROI            float64
	AvgPnLPerTrade float64
	AvgPnLPerWin   float64
	AvgPnLPerLoss  float64
	MaxSingleWin   float64
	MaxSingleLoss  float64

	EquityCurve []float64 // PnL acumulado en orden de generación
	MaxDrawdown float64   // máximo peak-to-trough sobre la curva

	// RiskRatio es mean(pnl)/std(pnl). Sharpe simplificado: sin tasa libre
	// de riesgo ni anualización. 0 con menos de 2 trades o varianza cero.
	RiskRatio float64

	Skipped SkipCounts
	Trades  []TradeRecord
}
