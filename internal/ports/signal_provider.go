package ports

import (
	"context"
	"time"

	"github.com/mvaldes/aurum/internal/domain"
	"github.com/mvaldes/aurum/internal/features"
)

// SignalProvider suministra las series de indicadores y del target hasta un
// cutoff. La implementación debe garantizar que ninguna observación
// posterior al cutoff llegue al core (barrera anti look-ahead).
type SignalProvider interface {
	// Target devuelve la serie de precios del activo objetivo hasta cutoff.
	Target(ctx context.Context, cutoff time.Time) (features.Series, error)

	// Indicator devuelve la serie del indicador dado hasta cutoff.
	Indicator(ctx context.Context, id string, cutoff time.Time) (features.Series, error)
}

// QualitativeProvider suministra la señal cualitativa de una fecha objetivo,
// si existe. El proceso que la genera (humano o LLM) es externo al core.
type QualitativeProvider interface {
	Signal(ctx context.Context, targetDate string) (domain.QualitativeSignal, bool)
}
