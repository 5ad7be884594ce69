package features_test

import (
	"math"
	"testing"

	"github.com/mvaldes/aurum/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkSeries(n int, f func(i int) float64) features.Series {
	points := make([]features.Point, n)
	for i := 0; i < n; i++ {
		points[i] = features.Point{Date: day(1).AddDate(0, 0, i), Value: f(i)}
	}
	return features.NewSeries(points)
}

func TestBuild_Validation(t *testing.T) {
	target := mkSeries(10, func(i int) float64 { return 100 + float64(i) })
	signals := map[string]features.Series{"vix": mkSeries(10, func(i int) float64 { return 20 })}
	assignments := []features.Assignment{{IndicatorID: "vix", Direction: 1, Weight: 5}}

	_, err := features.Build(signals, target, assignments, 0)
	assert.Error(t, err)

	_, err = features.Build(signals, target, nil, 1)
	assert.Error(t, err)

	_, err = features.Build(signals, features.Series{}, assignments, 1)
	assert.Error(t, err)
}

func TestBuild_DropsIncompleteWindows(t *testing.T) {
	const n = 60
	target := mkSeries(n, func(i int) float64 { return 100 + float64(i) })
	signals := map[string]features.Series{
		"vix": mkSeries(n, func(i int) float64 { return 20 + math.Sin(float64(i)) }),
	}
	assignments := []features.Assignment{{IndicatorID: "vix", Direction: 1, Weight: 5}}

	m, err := features.Build(signals, target, assignments, 1)
	require.NoError(t, err)
	require.Greater(t, m.NumRows(), 0)

	// La volatilidad rodada necesita 20 cambios diarios: ninguna fila puede
	// tener fecha anterior al día 21 del calendario.
	firstUsable := day(1).AddDate(0, 0, 20)
	for _, d := range m.Dates {
		assert.False(t, d.Before(firstUsable), "row at %s has incomplete window", d)
	}

	// Cinco columnas por indicador.
	require.Len(t, m.Columns, 5)
	assert.Equal(t, "vix_d1_chg", m.Columns[0].Name)
	assert.Equal(t, "vix_vol20", m.Columns[4].Name)
}

func TestBuild_LabelUsesTargetFuture(t *testing.T) {
	const n = 60
	// Target estrictamente creciente: toda etiqueta resoluble debe ser 1.
	target := mkSeries(n, func(i int) float64 { return 100 + float64(i) })
	signals := map[string]features.Series{
		"vix": mkSeries(n, func(i int) float64 { return 20 + math.Sin(float64(i)) }),
	}
	assignments := []features.Assignment{{IndicatorID: "vix", Direction: 1, Weight: 5}}

	m, err := features.Build(signals, target, assignments, 1)
	require.NoError(t, err)
	require.Greater(t, m.NumRows(), 0)

	for _, label := range m.Labels {
		assert.Equal(t, 1, label)
	}

	// La última fecha del calendario no tiene futuro resuelto: no puede
	// aparecer como fila etiquetada.
	lastDate := day(1).AddDate(0, 0, n-1)
	for _, d := range m.Dates {
		assert.True(t, d.Before(lastDate))
	}
}

func TestBuild_DirectionFlipsSignedColumns(t *testing.T) {
	const n = 60
	target := mkSeries(n, func(i int) float64 { return 100 + float64(i) })
	signal := func() map[string]features.Series {
		return map[string]features.Series{
			"dxy_index": mkSeries(n, func(i int) float64 { return 100 + math.Sin(float64(i)/3)*5 }),
		}
	}

	pos, err := features.Build(signal(), target,
		[]features.Assignment{{IndicatorID: "dxy_index", Direction: 1, Weight: 5}}, 1)
	require.NoError(t, err)
	neg, err := features.Build(signal(), target,
		[]features.Assignment{{IndicatorID: "dxy_index", Direction: -1, Weight: 5}}, 1)
	require.NoError(t, err)

	require.Equal(t, pos.NumRows(), neg.NumRows())
	for i := range pos.Rows {
		for c := 0; c < 4; c++ { // columnas con signo
			assert.InDelta(t, -pos.Rows[i][c], neg.Rows[i][c], 1e-12)
		}
		// La volatilidad no tiene signo.
		assert.InDelta(t, pos.Rows[i][4], neg.Rows[i][4], 1e-12)
	}
}

func TestBuild_NoLookAhead(t *testing.T) {
	const n = 60
	target := mkSeries(n, func(i int) float64 { return 100 + float64(i) })
	base := func(i int) float64 { return 20 + math.Sin(float64(i)) }

	build := func(f func(i int) float64) features.Matrix {
		m, err := features.Build(
			map[string]features.Series{"vix": mkSeries(n, f)},
			target,
			[]features.Assignment{{IndicatorID: "vix", Direction: 1, Weight: 5}},
			1,
		)
		require.NoError(t, err)
		return m
	}

	// Perturbar la señal solo a partir del día 41.
	pivot := day(1).AddDate(0, 0, 40)
	m1 := build(base)
	m2 := build(func(i int) float64 {
		if i >= 40 {
			return base(i) + 50
		}
		return base(i)
	})

	require.Equal(t, m1.Dates, m2.Dates)
	for i, d := range m1.Dates {
		if !d.Before(pivot) {
			continue
		}
		// Las filas anteriores a la perturbación no pueden cambiar: ninguna
		// feature incorpora información posterior a su propia fecha.
		assert.Equal(t, m1.Rows[i], m2.Rows[i], "row at %s changed", d)
	}
}
