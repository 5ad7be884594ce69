package domain

import "time"

// TradeRecord es una posición simulada sobre un evento binario.
// Se crea en el momento de la decisión y se liquida una sola vez contra
// el resultado conocido del evento; después es inmutable.
type TradeRecord struct {
	ID         string
	EventSlug  string
	EventTitle string
	Timestamp  time.Time

	Side            Side    // lado comprado
	EntryPrice      float64 // precio de entrada (0~1)
	ModelProbUp     float64 // probabilidad del modelo en el momento de decidir
	MarketPriceUp   float64 // precio cotizado del lado Up al decidir
	MarketPriceDown float64 // precio cotizado del lado Down al decidir
	Edge            float64 // ventaja calculada sobre el precio de entrada
	Stake           float64 // importe fijo invertido ($)
	Shares          float64 // stake / entry_price

	// Rellenado en el settlement
	Outcome         Side
	SettlementPrice float64 // 1.0 si el lado comprado ganó, 0.0 si no
	PnL             float64 // (settlement - entry) × shares
	IsWin           bool
}

// Settle liquida el trade contra el lado ganador del evento.
// Cada share del lado ganador paga $1; el perdedor paga $0.
func (t *TradeRecord) Settle(outcome Side) {
	t.Outcome = outcome
	if t.Side == outcome {
		t.SettlementPrice = 1.0
		t.IsWin = true
	} else {
		t.SettlementPrice = 0.0
		t.IsWin = false
	}
	t.PnL = (t.SettlementPrice - t.EntryPrice) * t.Shares
}
