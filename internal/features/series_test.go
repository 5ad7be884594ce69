package features_test

import (
	"math"
	"testing"
	"time"

	"github.com/mvaldes/aurum/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSeries_Sorts(t *testing.T) {
	s := features.NewSeries([]features.Point{
		{Date: day(3), Value: 3},
		{Date: day(1), Value: 1},
		{Date: day(2), Value: 2},
	})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, day(1), s.Points[0].Date)
	assert.Equal(t, day(3), s.Points[2].Date)
}

func TestSeries_TruncateAfter(t *testing.T) {
	s := features.NewSeries([]features.Point{
		{Date: day(1), Value: 1},
		{Date: day(5), Value: 5},
		{Date: day(9), Value: 9},
	})

	cut := s.TruncateAfter(day(5))
	require.Equal(t, 2, cut.Len())
	assert.Equal(t, 5.0, cut.Points[1].Value)

	// Cutoff inclusive: la observación del propio día sobrevive.
	assert.Equal(t, 1, s.TruncateAfter(day(1)).Len())
	assert.Equal(t, 0, s.TruncateAfter(day(0).AddDate(0, 0, -1)).Len())
}

func TestSeries_AlignTo_ForwardFill(t *testing.T) {
	s := features.NewSeries([]features.Point{
		{Date: day(2), Value: 10},
		{Date: day(4), Value: 20},
	})
	calendar := []time.Time{day(1), day(2), day(3), day(4), day(5)}

	values := s.AlignTo(calendar)
	require.Len(t, values, 5)

	assert.True(t, math.IsNaN(values[0])) // antes de la primera observación
	assert.Equal(t, 10.0, values[1])
	assert.Equal(t, 10.0, values[2]) // hueco rellenado hacia adelante
	assert.Equal(t, 20.0, values[3])
	assert.Equal(t, 20.0, values[4])
}

func TestUnionCalendar(t *testing.T) {
	series := map[string]features.Series{
		"a": features.NewSeries([]features.Point{{Date: day(2)}, {Date: day(4)}}),
		"b": features.NewSeries([]features.Point{{Date: day(1)}, {Date: day(2)}}),
	}

	calendar := features.UnionCalendar(series)
	require.Len(t, calendar, 3)
	assert.Equal(t, day(1), calendar[0])
	assert.Equal(t, day(4), calendar[2])
}
