package model_test

import (
	"testing"

	"github.com/mvaldes/aurum/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableData genera dos nubes linealmente separables en una dimensión.
func separableData() ([][]float64, []int) {
	var X [][]float64
	var y []int
	for i := 0; i < 40; i++ {
		X = append(X, []float64{-1.0 - float64(i%5)*0.1})
		y = append(y, 0)
		X = append(X, []float64{1.0 + float64(i%5)*0.1})
		y = append(y, 1)
	}
	return X, y
}

func TestTrainLogistic_SeparableData(t *testing.T) {
	X, y := separableData()
	clf := model.TrainLogistic(X, y, model.DefaultLogisticConfig())

	for i, row := range X {
		assert.Equal(t, y[i], clf.Predict(row))
	}

	// Lejos de la frontera las probabilidades deben ser extremas.
	assert.Greater(t, clf.PredictProba([]float64{3.0}), 0.9)
	assert.Less(t, clf.PredictProba([]float64{-3.0}), 0.1)
}

func TestTrainLogistic_Deterministic(t *testing.T) {
	X, y := separableData()
	cfg := model.DefaultLogisticConfig()

	a := model.TrainLogistic(X, y, cfg)
	b := model.TrainLogistic(X, y, cfg)

	require.Equal(t, a.Bias, b.Bias)
	require.Equal(t, a.Weights, b.Weights)
}

func TestTrainLogistic_EmptyInput(t *testing.T) {
	clf := model.TrainLogistic(nil, nil, model.DefaultLogisticConfig())
	assert.Empty(t, clf.Weights)
}

func TestPredictProba_Bounds(t *testing.T) {
	clf := model.Logistic{Weights: []float64{100}, Bias: 0}
	assert.InDelta(t, 1.0, clf.PredictProba([]float64{10}), 1e-9)
	assert.InDelta(t, 0.0, clf.PredictProba([]float64{-10}), 1e-9)
}
