package backtest

// policy.go — política de admisión de trades: decide si la divergencia
// entre la probabilidad del modelo y el precio del mercado justifica operar,
// y en qué lado.
//
// Dos modos:
//   - libre: gana el lado con más edge (empates a favor de Up)
//   - direction lock: solo el lado que el modelo favorece, y solo con su
//     propio edge — evita comprar "Down" cuando el modelo dice "Up" solo
//     porque ese edge era mayor.

import "github.com/mvaldes/aurum/internal/domain"

// Límites del guard de precios degenerados: cerca de 0 o de 1 el edge no
// vale nada y la división stake/precio se vuelve inestable.
const (
	minEntryPrice = 0.01
	maxEntryPrice = 0.99
)

// TradeIntent es la decisión de operar: lado, precio y tamaño implícito.
type TradeIntent struct {
	Side       domain.Side
	EntryPrice float64
	Edge       float64
	Stake      float64
	Shares     float64     // stake / entry_price (convención stake fijo)
}

// Decide evalúa si hay edge suficiente para operar. Devuelve nil cuando
// ningún lado supera el umbral (estrictamente) o ambos fallan el guard de
// precio.
func Decide(modelProbUp, priceUp, priceDown, edgeThreshold, stake float64, directionLock bool) *TradeIntent {
	edgeUp := modelProbUp - priceUp
	edgeDown := (1.0 - modelProbUp) - priceDown

	if directionLock {
		// Solo el lado implícito del modelo, con su propio edge.
		if modelProbUp >= 0.5 {
			if edgeUp > edgeThreshold {
				return intent(domain.SideUp, priceUp, edgeUp, stake)
			}
			return nil
		}
		if edgeDown > edgeThreshold {
			return intent(domain.SideDown, priceDown, edgeDown, stake)
		}
		return nil
	}

	// Modo libre: el edge mayor gana, empates a favor de Up.
	if edgeUp > edgeThreshold && edgeUp >= edgeDown {
		return intent(domain.SideUp, priceUp, edgeUp, stake)
	}
	if edgeDown > edgeThreshold && edgeDown > edgeUp {
		return intent(domain.SideDown, priceDown, edgeDown, stake)
	}
	return nil
}

// intent aplica el guard de precio degenerado y materializa la intención.
func intent(side domain.Side, entryPrice, edge, stake float64) *TradeIntent {
	if entryPrice <= minEntryPrice || entryPrice >= maxEntryPrice {
		return nil
	}
	return &TradeIntent{
		Side:       side,
		EntryPrice: entryPrice,
		Edge:       edge,
		Stake:      stake,
		Shares:     stake / entryPrice,
	}
}
