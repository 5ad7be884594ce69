package features

// matrix.go — construcción de la matriz de features alineada a la etiqueta
// de dirección futura del target.
//
// Por cada indicador se derivan cinco columnas: cambio a 1/5/20 días,
// desviación sobre la media móvil de 20 periodos y volatilidad rodada de 20
// periodos. Las cuatro primeras se multiplican por la dirección declarada
// del indicador sobre el target; la volatilidad no tiene signo.
//
// La etiqueta de una fila usa únicamente el precio futuro del propio target
// respecto a la fecha de la fila — ninguna feature incorpora información
// posterior a su fecha (sin look-ahead). Las filas con ventanas incompletas
// se descartan.

import (
	"fmt"
	"math"
	"time"
)

const rollingWindow = 20

// Column identifica una columna de la matriz y el indicador del que deriva.
type Column struct {
	Name        string
	IndicatorID string
}

// Matrix es la matriz de features etiquetada, indexada por fecha de trading.
// Inmutable tras su construcción.
type Matrix struct {
	Dates   []time.Time
	Columns []Column
	Rows    [][]float64
	Labels  []int       // 1 = el target subió en el horizonte, 0 = no subió
}

// NumRows devuelve el número de filas etiquetadas.
func (m Matrix) NumRows() int { return len(m.Rows) }

// Build construye la matriz a partir de las series de señal, la serie de
// precios del target y las asignaciones ya validadas contra el registro.
func Build(signals map[string]Series, target Series, assignments []Assignment, horizon int) (Matrix, error) {
	if horizon <= 0 {
		return Matrix{}, fmt.Errorf("features.Build: horizon must be positive, got %d", horizon)
	}
	if len(assignments) == 0 {
		return Matrix{}, fmt.Errorf("features.Build: no indicator assignments")
	}
	if target.Len() == 0 {
		return Matrix{}, fmt.Errorf("features.Build: empty target series")
	}

	calendar := UnionCalendar(signals)
	if len(calendar) == 0 {
		return Matrix{}, fmt.Errorf("features.Build: no signal observations")
	}

	// Derivar columnas indicador por indicador, en orden de asignación
	// para que la matriz sea reproducible.
	var columns []Column
	var colValues [][]float64
	for _, a := range assignments {
		s, ok := signals[a.IndicatorID]
		if !ok || s.Len() == 0 {
			continue
		}
		aligned := s.AlignTo(calendar)
		dir := float64(a.Direction)

		for _, d := range []struct {
			suffix string
			values []float64
			signed bool
		}{
			{"d1_chg", pctChange(aligned, 1), true},
			{"d5_chg", pctChange(aligned, 5), true},
			{"d20_chg", pctChange(aligned, rollingWindow), true},
			{"ma20_dev", maDeviation(aligned, rollingWindow), true},
			{"vol20", rollingVol(aligned, rollingWindow), false},
		} {
			vals := d.values
			if d.signed && dir < 0 {
				for i := range vals {
					vals[i] = -vals[i]
				}
			}
			columns = append(columns, Column{
				Name:        a.IndicatorID + "_" + d.suffix,
				IndicatorID: a.IndicatorID,
			})
			colValues = append(colValues, vals)
		}
	}

	if len(columns) == 0 {
		return Matrix{}, fmt.Errorf("features.Build: no usable indicator series")
	}

	// Índice de posición del target por fecha para calcular la etiqueta.
	targetIdx := make(map[time.Time]int, target.Len())
	for i, p := range target.Points {
		targetIdx[p.Date] = i
	}

	m := Matrix{Columns: columns}
	for i, date := range calendar {
		pos, ok := targetIdx[date]
		if !ok || pos+horizon >= target.Len() {
			continue // sin precio del target o sin futuro resuelto
		}
		base := target.Points[pos].Value
		if base == 0 {
			continue
		}

		row := make([]float64, len(colValues))
		complete := true
		for c, vals := range colValues {
			v := vals[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				complete = false
				break
			}
			row[c] = v
		}
		if !complete {
			continue // ventana rodada incompleta
		}

		label := 0
		if target.Points[pos+horizon].Value/base-1 > 0 {
			label = 1
		}

		m.Dates = append(m.Dates, date)
		m.Rows = append(m.Rows, row)
		m.Labels = append(m.Labels, label)
	}

	return m, nil
}

// pctChange devuelve el cambio relativo a k periodos: (v[i]-v[i-k])/v[i-k].
func pctChange(values []float64, k int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < k || math.IsNaN(values[i]) || math.IsNaN(values[i-k]) || values[i-k] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (values[i] - values[i-k]) / values[i-k]
	}
	return out
}

// maDeviation devuelve la desviación relativa sobre la media móvil de n periodos.
func maDeviation(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < n-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		valid := true
		for j := i - n + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if !valid || sum == 0 {
			out[i] = math.NaN()
			continue
		}
		ma := sum / float64(n)
		out[i] = (values[i] - ma) / ma
	}
	return out
}

// rollingVol devuelve la desviación estándar muestral de los cambios diarios
// sobre una ventana de n periodos.
func rollingVol(values []float64, n int) []float64 {
	changes := pctChange(values, 1)
	out := make([]float64, len(values))
	for i := range values {
		if i < n {
			out[i] = math.NaN()
			continue
		}
		window := changes[i-n+1 : i+1]
		mean := 0.0
		valid := true
		for _, c := range window {
			if math.IsNaN(c) {
				valid = false
				break
			}
			mean += c
		}
		if !valid {
			out[i] = math.NaN()
			continue
		}
		mean /= float64(n)
		variance := 0.0
		for _, c := range window {
			variance += (c - mean) * (c - mean)
		}
		out[i] = math.Sqrt(variance / float64(n-1))
	}
	return out
}
