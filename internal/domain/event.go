package domain

import "time"

// Side es uno de los dos resultados posibles de un evento binario.
type Side string

const (
	SideUp   Side = "Up"
	SideDown Side = "Down"
)

// Opposite devuelve el lado contrario.
func (s Side) Opposite() Side {
	if s == SideUp {
		return SideDown
	}
	return SideUp
}

// Valid devuelve true si el lado es uno de los dos resultados conocidos.
func (s Side) Valid() bool {
	return s == SideUp || s == SideDown
}

// PricePoint es una observación de mercado dentro de un evento:
// los dos precios cotizados de forma independiente para cada lado.
// No se exige que sumen 1 — en mercados ilíquidos divergen.
type PricePoint struct {
	Timestamp time.Time
	PriceUp   float64   // precio del token "Up" (0~1)
	PriceDown float64   // precio del token "Down" (0~1)
}

// Event es un evento Up/Down ya normalizado desde el payload externo.
// Los eventos llegan del colaborador de datos; el core solo los lee.
type Event struct {
	Slug       string
	Title      string
	TargetDate string       // fecha objetivo "YYYY-MM-DD", parseada del slug
	Outcome    Side         // lado ganador tras el settlement; "" si no resolvió
	Prices     []PricePoint
}

// Settled devuelve true si el evento tiene un resultado válido registrado.
func (e Event) Settled() bool {
	return e.Outcome.Valid()
}

// HasPrices devuelve true si el evento registró al menos una observación.
func (e Event) HasPrices() bool {
	return len(e.Prices) > 0
}
