package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGasPrice_RefreshAllPopulatesCache(t *testing.T) {
	f := newFixture()
	svc := NewGasPriceService(f.cfg, f.registry, f.provider, zap.NewNop())

	require.NoError(t, svc.RefreshAll(context.Background()))

	gwei, ok := svc.Current(1)
	require.True(t, ok)
	assert.InDelta(t, 20, gwei, 0.001)
}

func TestGasPrice_UnreachableChainIsSkipped(t *testing.T) {
	f := newFixture()
	delete(f.provider.clients, 56)
	svc := NewGasPriceService(f.cfg, f.registry, f.provider, zap.NewNop())

	require.NoError(t, svc.RefreshAll(context.Background()))

	_, ok := svc.Current(56)
	assert.False(t, ok)
	_, ok = svc.Current(1)
	assert.True(t, ok)
}

func TestGasPrice_CurrentMissesBeforeRefresh(t *testing.T) {
	f := newFixture()
	svc := NewGasPriceService(f.cfg, f.registry, f.provider, zap.NewNop())

	_, ok := svc.Current(1)
	assert.False(t, ok)
}

func TestWeiToGwei(t *testing.T) {
	assert.InDelta(t, 1, weiToGwei(big.NewInt(1_000_000_000)), 1e-9)
	assert.InDelta(t, 22.5, weiToGwei(big.NewInt(22_500_000_000)), 1e-9)
	assert.InDelta(t, 0, weiToGwei(big.NewInt(0)), 1e-9)
}
