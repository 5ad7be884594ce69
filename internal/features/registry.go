package features

// registry.go — registro de indicadores macro disponibles como proxies del
// target. La asignación de pesos y direcciones llega de un proceso de
// selección externo (humano o LLM); aquí solo se valida que los ids existan.

import "log/slog"

// Indicator describe un proxy cuantificable registrado.
type Indicator struct {
	ID       string
	Name     string
	Category string
}

// Assignment liga un indicador con su dirección declarada sobre el target
// y su peso de importancia externo.
type Assignment struct {
	IndicatorID string
	// Direction es +1 si el indicador subiendo es alcista para el target,
	// -1 si es bajista.
	Direction int
	// Weight es la importancia en escala 1–10, con 5 como neutro.
	Weight float64
}

// Registry es el conjunto de indicadores conocidos.
type Registry map[string]Indicator

// DefaultRegistry devuelve los proxies macro de serie.
func DefaultRegistry() Registry {
	list := []Indicator{
		{ID: "us_10y_yield", Name: "US 10Y treasury yield", Category: "rates"},
		{ID: "us_2y_yield", Name: "US 2Y treasury yield", Category: "rates"},
		{ID: "dxy_index", Name: "US dollar index", Category: "fx"},
		{ID: "sp500", Name: "S&P 500 index", Category: "sentiment"},
		{ID: "vix", Name: "VIX volatility index", Category: "sentiment"},
		{ID: "oil_wti", Name: "WTI crude oil", Category: "geopolitics"},
		{ID: "silver", Name: "silver futures", Category: "metals"},
		{ID: "tips_etf", Name: "TIPS inflation-protected ETF", Category: "inflation"},
		{ID: "copper", Name: "copper futures", Category: "inflation"},
		{ID: "target_volume", Name: "target asset trading volume", Category: "technical"},
	}
	r := make(Registry, len(list))
	for _, ind := range list {
		r[ind.ID] = ind
	}
	return r
}

// DefaultAssignments devuelve la configuración fija de pesos y direcciones
// que se usa cuando no hay selección externa.
func DefaultAssignments() []Assignment {
	return []Assignment{
		{IndicatorID: "us_10y_yield", Direction: -1, Weight: 8},
		{IndicatorID: "us_2y_yield", Direction: -1, Weight: 6},
		{IndicatorID: "dxy_index", Direction: -1, Weight: 9},
		{IndicatorID: "sp500", Direction: -1, Weight: 5},
		{IndicatorID: "vix", Direction: +1, Weight: 7},
		{IndicatorID: "oil_wti", Direction: +1, Weight: 4},
		{IndicatorID: "silver", Direction: +1, Weight: 6},
		{IndicatorID: "tips_etf", Direction: +1, Weight: 5},
		{IndicatorID: "target_volume", Direction: +1, Weight: 3},
		{IndicatorID: "copper", Direction: +1, Weight: 4},
	}
}

// Validate filtra las asignaciones con ids desconocidos. Los ids inválidos
// se descartan con un warning en vez de abortar la run (error blando).
func (r Registry) Validate(assignments []Assignment) []Assignment {
	valid := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := r[a.IndicatorID]; !ok {
			slog.Warn("dropping unknown indicator", "indicator_id", a.IndicatorID)
			continue
		}
		valid = append(valid, a)
	}
	return valid
}
