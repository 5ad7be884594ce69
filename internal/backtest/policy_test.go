package backtest_test

import (
	"testing"

	"github.com/mvaldes/aurum/internal/backtest"
	"github.com/mvaldes/aurum/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_EdgeAboveThreshold(t *testing.T) {
	// p=0.70, up=0.55 → edge Up 0.15 > 0.05; down edge 0.30-0.50 < 0.
	intent := backtest.Decide(0.70, 0.55, 0.50, 0.05, 1.0, false)

	require.NotNil(t, intent)
	assert.Equal(t, domain.SideUp, intent.Side)
	assert.InDelta(t, 0.15, intent.Edge, 1e-9)
	assert.InDelta(t, 1.0/0.55, intent.Shares, 1e-9) // ≈1.818
}

func TestDecide_ThresholdIsStrict(t *testing.T) {
	// edge Up exactamente igual al umbral: no se opera.
	intent := backtest.Decide(0.60, 0.55, 0.50, 0.05, 1.0, false)
	assert.Nil(t, intent)

	// Un pelo por encima sí.
	intent = backtest.Decide(0.601, 0.55, 0.50, 0.05, 1.0, false)
	require.NotNil(t, intent)
	assert.Equal(t, domain.SideUp, intent.Side)
}

func TestDecide_TieGoesToUp(t *testing.T) {
	// Edges idénticos en ambos lados: convención a favor de Up.
	// p=0.60: edge Up = 0.60-0.45 = 0.15; edge Down = 0.40-0.25 = 0.15.
	intent := backtest.Decide(0.60, 0.45, 0.25, 0.05, 1.0, false)

	require.NotNil(t, intent)
	assert.Equal(t, domain.SideUp, intent.Side)
}

func TestDecide_FreeModeTakesBiggerEdge(t *testing.T) {
	// p=0.40: edge Up = -0.10; edge Down = 0.60-0.45 = 0.15 → gana Down.
	intent := backtest.Decide(0.40, 0.50, 0.45, 0.05, 1.0, false)

	require.NotNil(t, intent)
	assert.Equal(t, domain.SideDown, intent.Side)
	assert.InDelta(t, 0.15, intent.Edge, 1e-9)
}

func TestDecide_DirectionLock(t *testing.T) {
	// Modelo alcista pero solo el lado Down tiene edge: bajo lock no se opera.
	// p=0.55: edge Up = 0.55-0.60 < 0; edge Down = 0.45-0.30 = 0.15.
	free := backtest.Decide(0.55, 0.60, 0.30, 0.05, 1.0, false)
	require.NotNil(t, free)
	assert.Equal(t, domain.SideDown, free.Side)

	locked := backtest.Decide(0.55, 0.60, 0.30, 0.05, 1.0, true)
	assert.Nil(t, locked)
}

func TestDecide_DirectionLockAllowsModelSide(t *testing.T) {
	intent := backtest.Decide(0.70, 0.55, 0.50, 0.05, 1.0, true)
	require.NotNil(t, intent)
	assert.Equal(t, domain.SideUp, intent.Side)

	// Modelo bajista con edge en Down: permitido bajo lock.
	intent = backtest.Decide(0.30, 0.80, 0.55, 0.05, 1.0, true)
	require.NotNil(t, intent)
	assert.Equal(t, domain.SideDown, intent.Side)
}

func TestDecide_DegeneratePriceGuard(t *testing.T) {
	// Precio de entrada en los extremos: nil aunque el edge sea enorme.
	assert.Nil(t, backtest.Decide(0.90, 0.005, 0.99, 0.05, 1.0, false))
	assert.Nil(t, backtest.Decide(0.99999, 0.995, 0.001, 0.05, 1.0, false))
	assert.Nil(t, backtest.Decide(0.90, 0.01, 0.98, 0.05, 1.0, false)) // límite exacto
}

func TestDecide_ExpensiveUpCheapDown(t *testing.T) {
	// Mercado sobrecomprado en Up (0.95) con Down regalado (0.10).
	// p=0.80: edge Up = -0.15; edge Down = 0.20-0.10 = 0.10.
	free := backtest.Decide(0.80, 0.95, 0.10, 0.05, 1.0, false)
	require.NotNil(t, free)
	assert.Equal(t, domain.SideDown, free.Side)
	assert.InDelta(t, 0.10, free.EntryPrice, 1e-9)

	// Bajo lock el modelo implica Up y su edge es negativo: no se opera.
	assert.Nil(t, backtest.Decide(0.80, 0.95, 0.10, 0.05, 1.0, true))
}

func TestDecide_NoEdgeNoTrade(t *testing.T) {
	// Modelo y mercado de acuerdo: ningún lado supera el umbral.
	assert.Nil(t, backtest.Decide(0.55, 0.55, 0.45, 0.05, 1.0, false))
	assert.Nil(t, backtest.Decide(0.50, 0.50, 0.50, 0.05, 1.0, false))
}
