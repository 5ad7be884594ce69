package model

import "math"

// Scaler estandariza features a media cero y varianza unidad.
// Se ajusta solo sobre las filas de entrenamiento para no filtrar
// información de la fila a predecir.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler calcula media y desviación por columna sobre las filas dadas.
func FitScaler(rows [][]float64) Scaler {
	if len(rows) == 0 {
		return Scaler{}
	}
	cols := len(rows[0])
	s := Scaler{Mean: make([]float64, cols), Std: make([]float64, cols)}

	for _, row := range rows {
		for c, v := range row {
			s.Mean[c] += v
		}
	}
	n := float64(len(rows))
	for c := range s.Mean {
		s.Mean[c] /= n
	}

	for _, row := range rows {
		for c, v := range row {
			d := v - s.Mean[c]
			s.Std[c] += d * d
		}
	}
	for c := range s.Std {
		s.Std[c] = math.Sqrt(s.Std[c] / n)
		if s.Std[c] == 0 {
			s.Std[c] = 1 // columna constante: dejarla en cero tras centrar
		}
	}
	return s
}

// TransformRow devuelve la fila estandarizada.
func (s Scaler) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for c, v := range row {
		out[c] = (v - s.Mean[c]) / s.Std[c]
	}
	return out
}

// Transform devuelve una copia estandarizada de todas las filas.
func (s Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.TransformRow(row)
	}
	return out
}
