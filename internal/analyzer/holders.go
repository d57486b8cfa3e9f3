package analyzer

import (
	"context"

	"go.uber.org/zap"

	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// Concentration thresholds, preserved exactly; recalibration needs product
// sign-off.
const (
	extremeTopHolderPct = 50.0
	highTopHolderPct    = 30.0
	top5ConcentratedPct = 80.0
	top10ConcentratedPct = 95.0
)

// HolderConcentrationAnalyzer computes supply-concentration ratios from
// top-holder data.
type HolderConcentrationAnalyzer struct {
	explorer port.ExplorerClient
	logger   *zap.Logger
	limit    int
}

// NewHolderConcentrationAnalyzer creates a new analyzer requesting up to
// limit holder records (10 when limit is not positive).
func NewHolderConcentrationAnalyzer(explorer port.ExplorerClient, logger *zap.Logger, limit int) *HolderConcentrationAnalyzer {
	if limit <= 0 {
		limit = 10
	}
	return &HolderConcentrationAnalyzer{
		explorer: explorer,
		logger:   logger.Named("HolderConcentrationAnalyzer"),
		limit:    limit,
	}
}

// Analyze fetches top holders and evaluates every threshold independently;
// several findings may accumulate for the same distribution. Zero holder
// records (or a failed lookup) yields a degraded result, never an error.
func (a *HolderConcentrationAnalyzer) Analyze(ctx context.Context, chain entity.ChainDefinition, address string) entity.HolderDistribution {
	holders, err := a.explorer.TopHolders(ctx, chain, address, a.limit)
	if err != nil {
		a.logger.Warn("Failed to fetch top holders",
			zap.String("address", address),
			zap.Int64("chainId", chain.ChainID),
			zap.Error(err))
		holders = nil
	}

	if len(holders) == 0 {
		return entity.HolderDistribution{
			ConcentrationRisks: []string{"Cannot analyze holder distribution"},
		}
	}

	dist := entity.HolderDistribution{TotalHolders: len(holders)}
	dist.TopHolderPct = holders[0].Percent
	for i, h := range holders {
		if i < 5 {
			dist.Top5Pct += h.Percent
		}
		if i < 10 {
			dist.Top10Pct += h.Percent
		}
	}

	if dist.TopHolderPct > extremeTopHolderPct {
		dist.IsHighlyConcentrated = true
		dist.ConcentrationRisks = append(dist.ConcentrationRisks, "Extreme concentration: top holder owns more than 50% of supply")
	} else if dist.TopHolderPct > highTopHolderPct {
		dist.IsHighlyConcentrated = true
		dist.ConcentrationRisks = append(dist.ConcentrationRisks, "High concentration: top holder owns more than 30% of supply")
	}
	if dist.Top5Pct > top5ConcentratedPct {
		dist.IsHighlyConcentrated = true
		dist.ConcentrationRisks = append(dist.ConcentrationRisks, "Top 5 holders own more than 80% of supply")
	}
	if dist.Top10Pct > top10ConcentratedPct {
		dist.IsHighlyConcentrated = true
		dist.ConcentrationRisks = append(dist.ConcentrationRisks, "Top 10 holders own more than 95% of supply")
	}

	return dist
}
