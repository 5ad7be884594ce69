package model

// scoring.go — agregación de factores cualitativos en un score [-1, 1] y
// una vista bullish/bearish/neutral. Es el origen típico del bias que
// consume Fuse cuando la señal cualitativa llega como lista de factores en
// lugar de una etiqueta ya resuelta.

import "strings"

// Umbrales de la vista sobre el score normalizado.
const (
	BullishThreshold = 0.3
	BearishThreshold = -0.3
)

// Factor es un factor cualitativo con dirección, nivel de impacto y peso.
type Factor struct {
	Name        string
	Direction   string  // "positive" | "negative"
	ImpactLevel string  // "high" | "medium" | "low"
	Weight      float64 // 1–10
}

// Contribution es el aporte de un factor al score total.
type Contribution struct {
	Name             string
	Direction        string
	ImpactLevel      string
	NormalizedWeight float64
	LevelWeight      float64
	Contribution     float64
}

// FactorScore es el resultado de la agregación.
type FactorScore struct {
	Score         float64        // normalizado a [-1, 1] aprox.
	View          string         // bullish | bearish | neutral
	Contributions []Contribution
}

var defaultLevelWeights = map[string]float64{
	"high":   3.0,
	"medium": 2.0,
	"low":    1.0,
}

// ScoreFactors agrega los factores: sum(signo × peso_nivel × peso_normalizado),
// dividido por el peso de nivel máximo para acotar el score.
// Con levelWeights nil se usa el mapeo 3/2/1.
func ScoreFactors(factors []Factor, levelWeights map[string]float64) FactorScore {
	if levelWeights == nil {
		levelWeights = defaultLevelWeights
	}

	weightSum := 0.0
	for _, f := range factors {
		if f.Weight > 0 {
			weightSum += f.Weight
		}
	}
	if weightSum == 0 {
		weightSum = 1
	}

	maxLevel := 0.0
	for _, w := range levelWeights {
		if w > maxLevel {
			maxLevel = w
		}
	}
	if maxLevel == 0 {
		maxLevel = 1
	}

	result := FactorScore{Contributions: make([]Contribution, 0, len(factors))}
	raw := 0.0
	for _, f := range factors {
		sign := -1.0
		if strings.EqualFold(strings.TrimSpace(f.Direction), "positive") {
			sign = 1.0
		}

		level := strings.ToLower(strings.TrimSpace(f.ImpactLevel))
		lw, ok := levelWeights[level]
		if !ok {
			lw = levelWeights["medium"]
		}

		w := f.Weight
		if w < 0 {
			w = 0
		}
		norm := w / weightSum

		contrib := sign * lw * norm
		raw += contrib
		result.Contributions = append(result.Contributions, Contribution{
			Name:             f.Name,
			Direction:        f.Direction,
			ImpactLevel:      f.ImpactLevel,
			NormalizedWeight: norm,
			LevelWeight:      lw,
			Contribution:     contrib,
		})
	}

	result.Score = raw / maxLevel
	switch {
	case result.Score >= BullishThreshold:
		result.View = BiasBullish
	case result.Score <= BearishThreshold:
		result.View = BiasBearish
	default:
		result.View = BiasNeutral
	}
	return result
}
