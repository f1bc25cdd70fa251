package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckUSDTBalanceHysteresis(t *testing.T) {
	s := NewAccountStore()
	s.UpdateBalanceBatch([]BalanceUpdate{{Asset: "USDT", WalletBalance: 5}})

	// Starts unblocked: no report, ok.
	report, ok := s.CheckUSDTBalance(10)
	assert.Empty(t, report)
	assert.True(t, ok)

	// Exchange reports insufficient funds -> latch moves to blocked.
	s.SetUSDTBlock(USDTBlocked)

	report, ok = s.CheckUSDTBalance(10)
	assert.False(t, ok)
	assert.NotEmpty(t, report)
	assert.Equal(t, USDTContinueBlock, s.GetUSDTBlock())

	// Still below lot: stays in continue_block, keeps reporting.
	report, ok = s.CheckUSDTBalance(10)
	assert.False(t, ok)
	assert.NotEmpty(t, report)
	assert.Equal(t, USDTContinueBlock, s.GetUSDTBlock())

	// Balance rises above lot -> unblocks.
	s.UpdateBalanceBatch([]BalanceUpdate{{Asset: "USDT", WalletBalance: 20}})
	report, ok = s.CheckUSDTBalance(10)
	assert.True(t, ok)
	assert.Empty(t, report)
	assert.Equal(t, USDTUnblock, s.GetUSDTBlock())
}

func TestGetBalanceUnknownAssetIsZero(t *testing.T) {
	s := NewAccountStore()
	assert.Equal(t, 0.0, s.GetBalance("ADA"))
}

func TestListenKeyRoundTrip(t *testing.T) {
	s := NewAccountStore()
	assert.Empty(t, s.GetListenKey())
	s.SetListenKey("abc123")
	assert.Equal(t, "abc123", s.GetListenKey())
}
