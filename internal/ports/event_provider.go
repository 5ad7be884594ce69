package ports

import (
	"context"

	"github.com/mvaldes/aurum/internal/domain"
)

// EventProvider suministra los eventos Up/Down ya resueltos de una run.
// El fetching real (APIs de mercado, scraping) vive fuera del core; el
// provider entrega eventos ya normalizados a tipos del dominio.
type EventProvider interface {
	// FetchEvents devuelve los eventos en el orden en que deben simularse.
	FetchEvents(ctx context.Context) ([]domain.Event, error)
}
