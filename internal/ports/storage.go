package ports

import (
	"context"

	"github.com/mvaldes/aurum/internal/domain"
)

// Storage persiste los resultados de cada run de backtest y la caché de
// predicciones por fecha. La persistencia es responsabilidad del caller;
// el core funciona igual con storage nil.
type Storage interface {
	// SaveRun persiste el resumen de la run y todos sus trades.
	SaveRun(ctx context.Context, result domain.BacktestResult) error

	// SavePrediction memoiza la predicción de una fecha objetivo.
	SavePrediction(ctx context.Context, p domain.Prediction) error

	// LoadPredictions devuelve las predicciones memoizadas por fecha.
	LoadPredictions(ctx context.Context) (map[string]domain.Prediction, error)

	// Close cierra la conexión limpiamente.
	Close() error
}

// Reporter presenta el resultado de una run al usuario.
type Reporter interface {
	// Report muestra el resultado completo del backtest.
	Report(ctx context.Context, result domain.BacktestResult) error
}
