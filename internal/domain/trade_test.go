package domain_test

import (
	"testing"

	"github.com/mvaldes/aurum/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTradeRecord_Settle_Win(t *testing.T) {
	// Entrada a 0.55 con stake $1 → 1.818 shares; si gana, cada share paga $1.
	trade := domain.TradeRecord{
		Side:       domain.SideUp,
		EntryPrice: 0.55,
		Stake:      1.0,
		Shares:     1.0 / 0.55,
	}
	trade.Settle(domain.SideUp)

	assert.True(t, trade.IsWin)
	assert.Equal(t, 1.0, trade.SettlementPrice)
	assert.InDelta(t, 1.8181, trade.Shares, 0.001)
	assert.InDelta(t, 0.8181, trade.PnL, 0.001)
}

func TestTradeRecord_Settle_Loss(t *testing.T) {
	// Si pierde, se pierde el stake completo: pnl = -entry × shares = -stake.
	trade := domain.TradeRecord{
		Side:       domain.SideUp,
		EntryPrice: 0.55,
		Stake:      1.0,
		Shares:     1.0 / 0.55,
	}
	trade.Settle(domain.SideDown)

	assert.False(t, trade.IsWin)
	assert.Equal(t, 0.0, trade.SettlementPrice)
	assert.InDelta(t, -1.0, trade.PnL, 0.001)
}

func TestTradeRecord_Settle_DownSideWin(t *testing.T) {
	trade := domain.TradeRecord{
		Side:       domain.SideDown,
		EntryPrice: 0.40,
		Stake:      2.0,
		Shares:     2.0 / 0.40,
	}
	trade.Settle(domain.SideDown)

	assert.True(t, trade.IsWin)
	assert.InDelta(t, (1.0-0.40)*5.0, trade.PnL, 1e-9) // 3.0
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, domain.SideDown, domain.SideUp.Opposite())
	assert.Equal(t, domain.SideUp, domain.SideDown.Opposite())
}

func TestSide_Valid(t *testing.T) {
	assert.True(t, domain.SideUp.Valid())
	assert.True(t, domain.SideDown.Valid())
	assert.False(t, domain.Side("Draw").Valid())
	assert.False(t, domain.Side("").Valid())
}
