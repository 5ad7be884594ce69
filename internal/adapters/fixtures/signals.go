package fixtures

// signals.go — series macro y señales cualitativas desde un archivo JSON.
// Implementa ports.SignalProvider y ports.QualitativeProvider sobre un
// snapshot estático: el recorte temporal (cutoff) se aplica en cada llamada,
// de modo que el mismo archivo sirve para cualquier fecha de backtest sin
// riesgo de look-ahead.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mvaldes/aurum/internal/domain"
	"github.com/mvaldes/aurum/internal/features"
	"github.com/mvaldes/aurum/internal/model"
)

type rawPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type rawFactor struct {
	Name        string  `json:"name"`
	Direction   string  `json:"direction"`
	ImpactLevel string  `json:"impact_level"`
	Weight      float64 `json:"weight"`
}

type rawQualitative struct {
	Bias       string      `json:"bias"`
	Confidence string      `json:"confidence"`
	Factors    []rawFactor `json:"factors"`
}

type signalsPayload struct {
	Target      []rawPoint                `json:"target"`
	Indicators  map[string][]rawPoint     `json:"indicators"`
	Qualitative map[string]rawQualitative `json:"qualitative"`
}

// SignalsFile sirve series e indicadores precargados desde disco.
type SignalsFile struct {
	target      features.Series
	indicators  map[string]features.Series
	qualitative map[string]domain.QualitativeSignal
}

// LoadSignalsFile parsea el archivo completo una sola vez.
func LoadSignalsFile(path string) (*SignalsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures.LoadSignalsFile: read %q: %w", path, err)
	}

	var payload signalsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("fixtures.LoadSignalsFile: parse %q: %w", path, err)
	}

	target, err := toSeries(payload.Target)
	if err != nil {
		return nil, fmt.Errorf("fixtures.LoadSignalsFile: target: %w", err)
	}

	indicators := make(map[string]features.Series, len(payload.Indicators))
	for id, pts := range payload.Indicators {
		s, err := toSeries(pts)
		if err != nil {
			return nil, fmt.Errorf("fixtures.LoadSignalsFile: indicator %q: %w", id, err)
		}
		indicators[id] = s
	}

	qualitative := make(map[string]domain.QualitativeSignal, len(payload.Qualitative))
	for date, q := range payload.Qualitative {
		sig, ok := resolveQualitative(q)
		if !ok {
			continue
		}
		qualitative[date] = sig
	}

	return &SignalsFile{
		target:      target,
		indicators:  indicators,
		qualitative: qualitative,
	}, nil
}

// Target devuelve la serie objetivo recortada en cutoff (inclusive).
func (f *SignalsFile) Target(_ context.Context, cutoff time.Time) (features.Series, error) {
	return f.target.TruncateAfter(cutoff), nil
}

// Indicator devuelve la serie del indicador recortada en cutoff (inclusive).
func (f *SignalsFile) Indicator(_ context.Context, id string, cutoff time.Time) (features.Series, error) {
	s, ok := f.indicators[id]
	if !ok {
		return features.Series{}, fmt.Errorf("fixtures.Indicator: %q: %w", id, domain.ErrUnknownIndicator)
	}
	return s.TruncateAfter(cutoff), nil
}

// Signal devuelve la señal cualitativa para la fecha objetivo, si existe.
func (f *SignalsFile) Signal(_ context.Context, targetDate string) (domain.QualitativeSignal, bool) {
	q, ok := f.qualitative[targetDate]
	return q, ok
}

// resolveQualitative prefiere la etiqueta de bias explícita; sin etiqueta,
// el bias se deriva agregando la lista de factores con ScoreFactors. Una
// entrada sin etiqueta ni factores no produce señal.
func resolveQualitative(q rawQualitative) (domain.QualitativeSignal, bool) {
	bias := q.Bias
	if bias == "" {
		if len(q.Factors) == 0 {
			return domain.QualitativeSignal{}, false
		}
		factors := make([]model.Factor, 0, len(q.Factors))
		for _, f := range q.Factors {
			factors = append(factors, model.Factor{
				Name:        f.Name,
				Direction:   f.Direction,
				ImpactLevel: f.ImpactLevel,
				Weight:      f.Weight,
			})
		}
		bias = model.ScoreFactors(factors, nil).View
	}

	confidence := q.Confidence
	if confidence == "" {
		confidence = model.ConfidenceMedium
	}
	return domain.QualitativeSignal{Bias: bias, Confidence: confidence}, true
}

func toSeries(points []rawPoint) (features.Series, error) {
	converted := make([]features.Point, 0, len(points))
	for _, p := range points {
		t, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return features.Series{}, fmt.Errorf("invalid date %q: %w", p.Date, err)
		}
		converted = append(converted, features.Point{Date: t, Value: p.Value})
	}
	return features.NewSeries(converted), nil
}
