package features

import (
	"math"
	"sort"
	"time"
)

// Point es una observación (fecha, valor) de un indicador.
type Point struct {
	Date  time.Time
	Value float64
}

// Series es la serie diaria de un indicador, ordenada por fecha ascendente.
// Las series llegan del colaborador de datos externo; aquí solo se alinean,
// se rellenan hacia adelante y se truncan al cutoff de la run.
type Series struct {
	Points []Point
}

// NewSeries construye una serie ordenada por fecha a partir de puntos sueltos.
func NewSeries(points []Point) Series {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return Series{Points: sorted}
}

// Len devuelve el número de observaciones.
func (s Series) Len() int { return len(s.Points) }

// TruncateAfter devuelve la serie sin ninguna observación posterior al cutoff.
// Es la barrera anti look-ahead: nada fechado después del cutoff sobrevive.
func (s Series) TruncateAfter(cutoff time.Time) Series {
	out := make([]Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Date.After(cutoff) {
			break
		}
		out = append(out, p)
	}
	return Series{Points: out}
}

// AlignTo proyecta la serie sobre un calendario, rellenando huecos hacia
// adelante (festivos, mercados cerrados). Las posiciones anteriores a la
// primera observación quedan en NaN y se descartan aguas arriba.
func (s Series) AlignTo(calendar []time.Time) []float64 {
	values := make([]float64, len(calendar))
	j := 0
	last := math.NaN()
	for i, d := range calendar {
		for j < len(s.Points) && !s.Points[j].Date.After(d) {
			last = s.Points[j].Value
			j++
		}
		values[i] = last
	}
	return values
}

// UnionCalendar devuelve las fechas únicas de todas las series, ordenadas.
func UnionCalendar(series map[string]Series) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.Date] {
				seen[p.Date] = true
				dates = append(dates, p.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
