package model

// predictor.go — predicción por fecha objetivo simulando "estar parado el
// día anterior": todas las series se truncan al día previo a la fecha y el
// modelo se entrena solo con ese pasado.
//
// Los fallos de datos o de ajuste no abortan el batch: producen una
// predicción fallback etiquetada con el motivo, que el simulador descarta.
// Así un 50/50 genuino del modelo nunca se confunde con un fallo.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mvaldes/aurum/internal/domain"
	"github.com/mvaldes/aurum/internal/features"
	"github.com/mvaldes/aurum/internal/ports"
)

const dateLayout = "2006-01-02"

// minTargetObservations es el mínimo de precios del target para intentar
// construir la matriz.
const minTargetObservations = 30

// PredictionCache memoiza predicciones por fecha objetivo. Es un objeto
// explícito e inyectable: los tests lo sustituyen y los workers concurrentes
// comparten una implementación con lock.
type PredictionCache interface {
	Get(targetDate string) (domain.Prediction, bool)
	Put(p domain.Prediction)
}

// MemoryCache es la implementación en memoria de PredictionCache, segura
// para escritores concurrentes.
type MemoryCache struct {
	mu sync.Mutex
	m  map[string]domain.Prediction
}

// NewMemoryCache crea una caché vacía, opcionalmente precargada.
func NewMemoryCache(seed map[string]domain.Prediction) *MemoryCache {
	c := &MemoryCache{m: make(map[string]domain.Prediction)}
	for k, v := range seed {
		c.m[k] = v
	}
	return c
}

// Get devuelve la predicción memoizada de una fecha.
func (c *MemoryCache) Get(targetDate string) (domain.Prediction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.m[targetDate]
	return p, ok
}

// Put memoiza una predicción.
func (c *MemoryCache) Put(p domain.Prediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[p.TargetDate] = p
}

// Snapshot devuelve una copia del contenido de la caché.
func (c *MemoryCache) Snapshot() map[string]domain.Prediction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]domain.Prediction, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// Predictor produce predicciones de dirección para fechas objetivo.
type Predictor struct {
	signals     ports.SignalProvider
	qualitative ports.QualitativeProvider // nil = sin fusión cualitativa
	registry    features.Registry
	assignments []features.Assignment
	horizon     int
	cache       PredictionCache
}

// NewPredictor crea un predictor con sus dependencias inyectadas.
// Las asignaciones se validan contra el registro; los ids desconocidos se
// descartan en este punto y no vuelven a evaluarse.
func NewPredictor(
	signals ports.SignalProvider,
	qualitative ports.QualitativeProvider,
	registry features.Registry,
	assignments []features.Assignment,
	horizon int,
	cache PredictionCache,
) *Predictor {
	if cache == nil {
		cache = NewMemoryCache(nil)
	}
	return &Predictor{
		signals:     signals,
		qualitative: qualitative,
		registry:    registry,
		assignments: registry.Validate(assignments),
		horizon:     horizon,
		cache:       cache,
	}
}

// PredictDate devuelve la predicción para una fecha objetivo "YYYY-MM-DD".
// Nunca devuelve error: los fallos producen un fallback etiquetado.
func (p *Predictor) PredictDate(ctx context.Context, targetDate string) domain.Prediction {
	if cached, ok := p.cache.Get(targetDate); ok {
		return cached
	}

	pred := p.predict(ctx, targetDate)
	p.cache.Put(pred)
	return pred
}

func (p *Predictor) predict(ctx context.Context, targetDate string) domain.Prediction {
	day, err := time.Parse(dateLayout, targetDate)
	if err != nil {
		return domain.FallbackPrediction(targetDate, "invalid date format")
	}

	// Cutoff = día anterior a la fecha objetivo.
	cutoff := day.AddDate(0, 0, -1)

	target, err := p.signals.Target(ctx, cutoff)
	if err != nil {
		return domain.FallbackPrediction(targetDate, fmt.Sprintf("target price fetch: %v", err))
	}
	if target.Len() < minTargetObservations {
		return domain.FallbackPrediction(targetDate, "insufficient target price data")
	}

	signals := make(map[string]features.Series, len(p.assignments))
	for _, a := range p.assignments {
		s, err := p.signals.Indicator(ctx, a.IndicatorID, cutoff)
		if err != nil {
			slog.Warn("indicator fetch failed, excluding",
				"indicator_id", a.IndicatorID,
				"target_date", targetDate,
				"err", err,
			)
			continue
		}
		signals[a.IndicatorID] = s
	}
	if len(signals) == 0 {
		return domain.FallbackPrediction(targetDate, "no indicator data available")
	}

	matrix, err := features.Build(signals, target, p.assignments, p.horizon)
	if err != nil {
		return domain.FallbackPrediction(targetDate, fmt.Sprintf("feature matrix: %v", err))
	}

	est, err := EstimateProbability(matrix, p.assignments, p.horizon)
	if err != nil {
		return domain.FallbackPrediction(targetDate, fmt.Sprintf("estimation: %v", err))
	}

	probUp := est.ProbabilityUp
	method := "regression"

	if p.qualitative != nil {
		if sig, ok := p.qualitative.Signal(ctx, targetDate); ok {
			fused := Fuse(probUp, sig.Bias, sig.Confidence)
			probUp = fused.FinalProbabilityUp
			method = "regression+fusion"
		}
	}

	return domain.NewPrediction(targetDate, probUp, method)
}

// PredictBatch predice varias fechas con un pool de workers. Cada fecha
// entrena sobre un conjunto independiente, así que la paralelización es
// segura; la caché compartida serializa sus escrituras con su lock.
func (p *Predictor) PredictBatch(ctx context.Context, dates []string, workers int) map[string]domain.Prediction {
	if workers <= 0 {
		workers = 1
	}

	workCh := make(chan string, len(dates))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for date := range workCh {
				pred := p.PredictDate(ctx, date)
				slog.Debug("predicted",
					"target_date", date,
					"direction", pred.Direction,
					"prob_up", pred.ProbabilityUp,
					"method", pred.Method,
				)
			}
		}()
	}

	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		workCh <- d
	}
	close(workCh)
	wg.Wait()

	out := make(map[string]domain.Prediction, len(seen))
	for d := range seen {
		if pred, ok := p.cache.Get(d); ok {
			out[d] = pred
		}
	}
	return out
}
