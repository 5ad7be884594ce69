package backtest

// source.go — fuentes de probabilidad para el simulador. El simulador no
// sabe de dónde sale la probabilidad: puede ser una constante (barridos de
// parámetros), un mapa precalculado, o un predictor con caché memoizada.

import (
	"context"

	"github.com/mvaldes/aurum/internal/domain"
)

// ProbabilitySource entrega la predicción aplicable a un evento, si existe.
type ProbabilitySource interface {
	ProbabilityFor(ctx context.Context, event domain.Event) (domain.Prediction, bool)
}

// FixedSource usa la misma probabilidad para todos los eventos.
type FixedSource struct {
	ProbUp float64
}

// ProbabilityFor devuelve siempre la probabilidad fija.
func (s FixedSource) ProbabilityFor(_ context.Context, event domain.Event) (domain.Prediction, bool) {
	p := domain.NewPrediction(event.TargetDate, s.ProbUp, "fixed")
	return p, true
}

// MapSource resuelve la predicción por fecha objetivo del evento.
type MapSource struct {
	Predictions map[string]domain.Prediction
}

// ProbabilityFor busca la predicción de la fecha del evento.
func (s MapSource) ProbabilityFor(_ context.Context, event domain.Event) (domain.Prediction, bool) {
	if event.TargetDate == "" {
		return domain.Prediction{}, false
	}
	p, ok := s.Predictions[event.TargetDate]
	return p, ok
}

// PredictorSource resuelve predicciones bajo demanda con un predictor
// memoizado. predictFn es típicamente (*model.Predictor).PredictDate.
type PredictorSource struct {
	PredictFn func(ctx context.Context, targetDate string) domain.Prediction
}

// ProbabilityFor predice (o recupera de caché) la fecha del evento.
func (s PredictorSource) ProbabilityFor(ctx context.Context, event domain.Event) (domain.Prediction, bool) {
	if event.TargetDate == "" || s.PredictFn == nil {
		return domain.Prediction{}, false
	}
	return s.PredictFn(ctx, event.TargetDate), true
}
