package model_test

import (
	"testing"

	"github.com/mvaldes/aurum/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitScaler_Standardizes(t *testing.T) {
	rows := [][]float64{{1, 10}, {3, 20}, {5, 30}}
	s := model.FitScaler(rows)

	out := s.Transform(rows)
	require.Len(t, out, 3)

	// Media cero por columna tras la transformación.
	for c := 0; c < 2; c++ {
		sum := out[0][c] + out[1][c] + out[2][c]
		assert.InDelta(t, 0.0, sum, 1e-9)
	}
	assert.InDelta(t, 3.0, s.Mean[0], 1e-9)
	assert.InDelta(t, 20.0, s.Mean[1], 1e-9)
}

func TestFitScaler_ConstantColumn(t *testing.T) {
	rows := [][]float64{{7, 1}, {7, 2}, {7, 3}}
	s := model.FitScaler(rows)

	// Columna constante: std forzada a 1 para no dividir por cero;
	// el valor transformado queda en cero tras centrar.
	out := s.TransformRow([]float64{7, 2})
	assert.Equal(t, 0.0, out[0])
	assert.InDelta(t, 0.0, out[1], 1e-9)
}

func TestFitScaler_Empty(t *testing.T) {
	s := model.FitScaler(nil)
	assert.Empty(t, s.Mean)
	assert.Empty(t, s.Std)
}
