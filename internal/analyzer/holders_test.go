package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"token_verifier/internal/entity"
)

var testChain = entity.ChainDefinition{ChainID: 1, Name: "Ethereum Mainnet", ExplorerAPIURL: "https://api.example.org/api"}

const testAddress = "0xdac17f958d2ee523a2206206994597c13d831ec7"

func holderRecords(percents ...float64) []entity.HolderRecord {
	records := make([]entity.HolderRecord, len(percents))
	for i, p := range percents {
		records[i] = entity.HolderRecord{Address: testAddress, Percent: p}
	}
	return records
}

func TestHolders_ExplorerFailureDegrades(t *testing.T) {
	explorer := &mockExplorer{holdersErr: errExplorerDown}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.Equal(t, 0, dist.TotalHolders)
	assert.False(t, dist.IsHighlyConcentrated)
	assert.Equal(t, []string{"Cannot analyze holder distribution"}, dist.ConcentrationRisks)
}

func TestHolders_EmptyDataDegrades(t *testing.T) {
	explorer := &mockExplorer{}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.Equal(t, []string{"Cannot analyze holder distribution"}, dist.ConcentrationRisks)
}

func TestHolders_ExtremeConcentration(t *testing.T) {
	explorer := &mockExplorer{holders: holderRecords(60, 25)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.Equal(t, 2, dist.TotalHolders)
	assert.InDelta(t, 60, dist.TopHolderPct, 0.001)
	assert.InDelta(t, 85, dist.Top5Pct, 0.001)
	assert.True(t, dist.IsHighlyConcentrated)
	// Thresholds are evaluated independently; both the top-holder and the
	// top-5 findings fire for the same distribution.
	require.Len(t, dist.ConcentrationRisks, 2)
	assert.Contains(t, dist.ConcentrationRisks, "Extreme concentration: top holder owns more than 50% of supply")
	assert.Contains(t, dist.ConcentrationRisks, "Top 5 holders own more than 80% of supply")
}

func TestHolders_HighConcentrationOnly(t *testing.T) {
	explorer := &mockExplorer{holders: holderRecords(35, 10, 10)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.True(t, dist.IsHighlyConcentrated)
	assert.Equal(t, []string{"High concentration: top holder owns more than 30% of supply"}, dist.ConcentrationRisks)
}

func TestHolders_Top10Threshold(t *testing.T) {
	// Ten holders of 9.8% each: top10 = 98 > 95 while top1 and top5 stay
	// under their thresholds.
	explorer := &mockExplorer{holders: holderRecords(9.8, 9.8, 9.8, 9.8, 9.8, 9.8, 9.8, 9.8, 9.8, 9.8)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.True(t, dist.IsHighlyConcentrated)
	assert.Equal(t, []string{"Top 10 holders own more than 95% of supply"}, dist.ConcentrationRisks)
}

func TestHolders_WellDistributed(t *testing.T) {
	explorer := &mockExplorer{holders: holderRecords(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.False(t, dist.IsHighlyConcentrated)
	assert.Empty(t, dist.ConcentrationRisks)
	assert.Equal(t, 10, dist.TotalHolders)
	assert.InDelta(t, 25, dist.Top5Pct, 0.001)
	assert.InDelta(t, 50, dist.Top10Pct, 0.001)
}

func TestHolders_BoundaryIsExclusive(t *testing.T) {
	// Exactly 50% does not trip the extreme threshold, and exactly 30% does
	// not trip the high one.
	explorer := &mockExplorer{holders: holderRecords(50)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 10)

	dist := a.Analyze(context.Background(), testChain, testAddress)

	assert.False(t, dist.IsHighlyConcentrated)
	assert.Empty(t, dist.ConcentrationRisks)
}

func TestHolders_LimitDefaultsToTen(t *testing.T) {
	explorer := &mockExplorer{holders: holderRecords(5)}
	a := NewHolderConcentrationAnalyzer(explorer, zap.NewNop(), 0)

	a.Analyze(context.Background(), testChain, testAddress)

	assert.Equal(t, 10, explorer.holderLimitSeen)
}
