package model

// logistic.go — regresión logística con regularización L2, entrenada por
// descenso de gradiente full-batch. Sin aleatoriedad: pesos inicializados a
// cero, paso y número de iteraciones fijos — el mismo input produce siempre
// el mismo modelo.

import "math"

// LogisticConfig controla el entrenamiento del clasificador.
type LogisticConfig struct {
	C            float64 // inverso de la fuerza de regularización (estilo sklearn)
	MaxIter      int
	LearningRate float64
	Tol          float64 // norma del gradiente bajo la cual se detiene
}

// DefaultLogisticConfig replica los hiperparámetros de producción.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{C: 1.0, MaxIter: 1000, LearningRate: 0.5, Tol: 1e-6}
}

// Logistic es el clasificador ajustado: inmutable tras el entrenamiento.
type Logistic struct {
	Weights []float64
	Bias    float64
}

// TrainLogistic ajusta el clasificador sobre X (filas ya estandarizadas y
// ponderadas) y etiquetas binarias y.
//
// Minimiza (1/n)·Σ logloss + (1/(2·C·n))·||w||²; el intercepto no se regulariza.
func TrainLogistic(X [][]float64, y []int, cfg LogisticConfig) Logistic {
	n := len(X)
	if n == 0 {
		return Logistic{}
	}
	cols := len(X[0])
	w := make([]float64, cols)
	b := 0.0
	lambda := 1.0 / (cfg.C * float64(n))

	gradW := make([]float64, cols)
	for iter := 0; iter < cfg.MaxIter; iter++ {
		for c := range gradW {
			gradW[c] = 0
		}
		gradB := 0.0

		for i, row := range X {
			p := sigmoid(dot(w, row) + b)
			diff := p - float64(y[i])
			for c, v := range row {
				gradW[c] += diff * v
			}
			gradB += diff
		}

		norm := 0.0
		inv := 1.0 / float64(n)
		for c := range gradW {
			gradW[c] = gradW[c]*inv + lambda*w[c]
			norm += gradW[c] * gradW[c]
		}
		gradB *= inv
		norm += gradB * gradB

		for c := range w {
			w[c] -= cfg.LearningRate * gradW[c]
		}
		b -= cfg.LearningRate * gradB

		if math.Sqrt(norm) < cfg.Tol {
			break
		}
	}

	return Logistic{Weights: w, Bias: b}
}

// PredictProba devuelve la probabilidad de la clase positiva para una fila.
func (l Logistic) PredictProba(row []float64) float64 {
	return sigmoid(dot(l.Weights, row) + l.Bias)
}

// Predict devuelve la clase predicha (1 si p >= 0.5).
func (l Logistic) Predict(row []float64) int {
	if l.PredictProba(row) >= 0.5 {
		return 1
	}
	return 0
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sigmoid(z float64) float64 {
	// Forma estable para z muy negativo
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}
