package model

// estimator.go — pipeline del estimador de probabilidad:
//
//  1. estandarizar features (ajuste solo con filas de entrenamiento)
//  2. multiplicar cada columna por peso_importancia/5.0 (escala 1–10, 5=neutro)
//  3. evaluar con CV de ventana expansiva (2–5 folds según muestra)
//  4. reajustar con todo el entrenamiento y predecir la última fila
//
// La última fila de la matriz actúa como held-out: nunca entra en el fit.
// Ante datos insuficientes o fallo de ajuste se devuelve error — el fallback
// a 0.5 es decisión del caller, nunca de este componente.

import (
	"fmt"
	"math"
	"sort"

	"github.com/mvaldes/aurum/internal/domain"
	"github.com/mvaldes/aurum/internal/features"
)

// MinTrainingRows es el mínimo de filas etiquetadas para un ajuste con
// significado estadístico.
const MinTrainingRows = 60

// neutralWeight es el punto neutro de la escala de importancia externa.
const neutralWeight = 5.0

// FeatureImportance es el diagnóstico de una feature del modelo ajustado.
type FeatureImportance struct {
	Feature          string
	Coefficient      float64
	Importance       float64 // |coeficiente| × multiplicador de peso
	WeightMultiplier float64
}

// Diagnostics resume el entrenamiento y la evaluación cruzada.
type Diagnostics struct {
	Algorithm       string
	TrainingSamples int
	FeatureCount    int
	ForecastHorizon int
	CVFolds         int
	CVAccuracyMean  float64
	CVAccuracyStd   float64
	CVLogLossMean   float64
	TrainUpRatio    float64
}

// Estimate es el artefacto inmutable que produce el estimador.
type Estimate struct {
	ProbabilityUp   float64
	ProbabilityDown float64
	Confidence      float64             // |p - 0.5| × 2
	Diagnostics     Diagnostics
	TopFeatures     []FeatureImportance // top 10 por importancia descendente
}

// EstimateProbability entrena el clasificador sobre la matriz y devuelve la
// probabilidad de "Up" para la fila más reciente.
func EstimateProbability(m features.Matrix, assignments []features.Assignment, horizon int) (Estimate, error) {
	if m.NumRows() < MinTrainingRows {
		return Estimate{}, fmt.Errorf("model.EstimateProbability: %w", domain.InsufficientDataError(m.NumRows(), MinTrainingRows))
	}

	// La fila más reciente queda fuera del entrenamiento.
	n := m.NumRows() - 1
	trainRows := m.Rows[:n]
	trainLabels := m.Labels[:n]
	latest := m.Rows[n]

	// Multiplicador por columna según la importancia externa del indicador.
	weightByID := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		weightByID[a.IndicatorID] = a.Weight
	}
	multipliers := make([]float64, len(m.Columns))
	for c, col := range m.Columns {
		multipliers[c] = 1.0
		if w, ok := weightByID[col.IndicatorID]; ok {
			multipliers[c] = w / neutralWeight
		}
	}

	scaler := FitScaler(trainRows)
	weighted := func(row []float64) []float64 {
		out := scaler.TransformRow(row)
		for c := range out {
			out[c] *= multipliers[c]
		}
		return out
	}

	X := make([][]float64, n)
	for i, row := range trainRows {
		X[i] = weighted(row)
	}
	xLatest := weighted(latest)

	cfg := DefaultLogisticConfig()

	// Evaluación con ventana expansiva.
	folds := ExpandingFolds(n, FoldCount(n))
	var accs, losses []float64
	for _, f := range folds {
		cv := TrainLogistic(X[:f.TrainEnd], trainLabels[:f.TrainEnd], cfg)

		correct := 0
		loss := 0.0
		for i := f.TestStart; i < f.TestEnd; i++ {
			p := cv.PredictProba(X[i])
			if cv.Predict(X[i]) == trainLabels[i] {
				correct++
			}
			loss += logLoss(p, trainLabels[i])
		}
		size := f.TestEnd - f.TestStart
		accs = append(accs, float64(correct)/float64(size))
		losses = append(losses, loss/float64(size))
	}

	// Modelo final con todo el entrenamiento.
	final := TrainLogistic(X, trainLabels, cfg)
	probUp := final.PredictProba(xLatest)
	if math.IsNaN(probUp) {
		return Estimate{}, fmt.Errorf("model.EstimateProbability: fit diverged (NaN probability)")
	}

	importances := make([]FeatureImportance, len(m.Columns))
	for c, col := range m.Columns {
		importances[c] = FeatureImportance{
			Feature:          col.Name,
			Coefficient:      final.Weights[c],
			Importance:       math.Abs(final.Weights[c]) * multipliers[c],
			WeightMultiplier: multipliers[c],
		}
	}
	sort.SliceStable(importances, func(i, j int) bool {
		return importances[i].Importance > importances[j].Importance
	})
	if len(importances) > 10 {
		importances = importances[:10]
	}

	upRatio := 0.0
	for _, label := range trainLabels {
		upRatio += float64(label)
	}
	upRatio /= float64(n)

	return Estimate{
		ProbabilityUp:   probUp,
		ProbabilityDown: 1.0 - probUp,
		Confidence:      math.Abs(probUp-0.5) * 2,
		Diagnostics: Diagnostics{
			Algorithm:       "logistic regression (importance-weighted features)",
			TrainingSamples: n,
			FeatureCount:    len(m.Columns),
			ForecastHorizon: horizon,
			CVFolds:         len(folds),
			CVAccuracyMean:  mean(accs),
			CVAccuracyStd:   stdDev(accs),
			CVLogLossMean:   mean(losses),
			TrainUpRatio:    upRatio,
		},
		TopFeatures: importances,
	}, nil
}

// logLoss devuelve la pérdida logarítmica de una predicción, con clipping
// para evitar log(0).
func logLoss(p float64, label int) float64 {
	const eps = 1e-15
	p = math.Min(math.Max(p, eps), 1-eps)
	if label == 1 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev devuelve la desviación estándar poblacional.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	variance := 0.0
	for _, x := range xs {
		variance += (x - m) * (x - m)
	}
	return math.Sqrt(variance / float64(len(xs)))
}
