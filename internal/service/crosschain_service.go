package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"token_verifier/internal/config"
	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// crossChainServiceImpl implements the CrossChainService interface.
type crossChainServiceImpl struct {
	cfg      *config.Config
	analyzer *ChainAnalyzer
	registry port.ChainRegistry
	logger   *zap.Logger
}

// NewCrossChainService creates a new instance of CrossChainService.
func NewCrossChainService(cfg *config.Config, chainAnalyzer *ChainAnalyzer, registry port.ChainRegistry, logger *zap.Logger) port.CrossChainService {
	return &crossChainServiceImpl{
		cfg:      cfg,
		analyzer: chainAnalyzer,
		registry: registry,
		logger:   logger.Named("CrossChainService"),
	}
}

// VerifyAcrossChains runs the full per-chain pipeline concurrently across
// the requested chains. Each chain's failure is isolated into an
// {exists:false, error} record; the batch itself only fails when the caller
// cancels it.
func (s *crossChainServiceImpl) VerifyAcrossChains(ctx context.Context, address string, chainIDs []int64) (*entity.CrossChainInfo, error) {
	if len(chainIDs) == 0 {
		chainIDs = s.cfg.Verification.CrossChainIDs
	}
	s.logger.Info("Starting cross-chain verification",
		zap.String("address", address),
		zap.Int("chainCount", len(chainIDs)))

	results := make([]entity.ChainVerificationResult, len(chainIDs))

	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Verification.MaxConcurrentChains)

	for i, chainID := range chainIDs {
		idx, id := i, chainID // capture range variables for the goroutine
		eg.Go(func() error {
			outcome := s.analyzer.AnalyzeChain(childCtx, address, id)
			results[idx] = toChainResult(id, outcome)
			// Per-chain failures are already folded into the record; never
			// abort the batch over one chain.
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.logger.Error("Cross-chain errgroup failed", zap.String("address", address), zap.Error(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cross-chain verification cancelled: %w", err)
	}

	info := aggregate(address, results)
	s.logger.Info("Cross-chain verification complete",
		zap.String("address", address),
		zap.Int("tokensFound", info.TokensFound),
		zap.Int("highRisk", info.HighRiskOnChains))
	return info, nil
}

func toChainResult(chainID int64, outcome entity.AnalysisOutcome) entity.ChainVerificationResult {
	analysis := outcome.Analysis
	result := entity.ChainVerificationResult{ChainID: chainID}
	if analysis != nil {
		result.ChainName = analysis.ChainName
	}

	if outcome.Status == entity.OutcomeError {
		result.Error = outcome.Reason
		return result
	}
	if analysis == nil || !analysis.IsContract {
		return result
	}

	result.Exists = true
	result.Verified = !analysis.Findings.UnverifiedCode
	result.RiskLevel = analysis.RiskLevel
	result.OverallScore = analysis.OverallScore
	result.Owner = analysis.Ownership.Owner
	result.IsHighlyConcentrated = analysis.Holders.IsHighlyConcentrated
	return result
}

// aggregate derives counts, bridge indicators and recommendations from the
// ordered per-chain results.
func aggregate(address string, results []entity.ChainVerificationResult) *entity.CrossChainInfo {
	info := &entity.CrossChainInfo{
		BaseAddress:     address,
		PerChainResults: results,
	}

	owners := make(map[string]struct{})
	concentratedCount := 0
	var existingChains []string
	for _, r := range results {
		if !r.Exists {
			continue
		}
		info.TokensFound++
		existingChains = append(existingChains, r.ChainName)
		if r.Verified {
			info.VerifiedOnChains++
		}
		switch r.RiskLevel {
		case entity.RiskLevelHigh, entity.RiskLevelCritical:
			info.HighRiskOnChains++
		case entity.RiskLevelMedium:
			info.MediumRiskOnChains++
		}
		if r.Owner != "" {
			owners[r.Owner] = struct{}{}
		}
		if r.IsHighlyConcentrated {
			concentratedCount++
		}
	}

	if info.TokensFound > 1 {
		info.BridgeIndicators = append(info.BridgeIndicators,
			fmt.Sprintf("Deployed on %d chains", info.TokensFound))
		for i, name := range existingChains {
			if i == 0 {
				continue
			}
			info.WrappedVersions = append(info.WrappedVersions,
				fmt.Sprintf("%s: possible bridged or wrapped deployment", name))
		}
	}
	if info.HighRiskOnChains > 0 {
		info.BridgeIndicators = append(info.BridgeIndicators,
			fmt.Sprintf("High risk on %d chains", info.HighRiskOnChains))
	}
	if info.VerifiedOnChains > 0 && info.VerifiedOnChains < info.TokensFound {
		info.BridgeIndicators = append(info.BridgeIndicators, "Verification status varies across chains")
	}
	if len(owners) > 1 {
		info.BridgeIndicators = append(info.BridgeIndicators,
			fmt.Sprintf("Multiple owners across chains (%d distinct)", len(owners)))
	}
	if info.TokensFound > 0 && concentratedCount*2 > info.TokensFound {
		info.BridgeIndicators = append(info.BridgeIndicators, "High concentration across chains")
	}

	info.Recommendations = crossChainRecommendations(info)
	return info
}

// crossChainRecommendations is a fixed, ordered rule list over the
// aggregate counts; rules are not mutually exclusive.
func crossChainRecommendations(info *entity.CrossChainInfo) []string {
	var recs []string
	if info.TokensFound == 0 {
		recs = append(recs, "Token not found on any requested chain; do not interact")
		return recs
	}
	if info.TokensFound == 1 {
		recs = append(recs, "Token exists on single chain only")
	}
	if info.HighRiskOnChains > 0 {
		recs = append(recs, fmt.Sprintf("Avoid the %d chain(s) flagged high risk", info.HighRiskOnChains))
	}
	if info.MediumRiskOnChains > 0 {
		recs = append(recs, "Review medium-risk deployments before automating")
	}
	if info.VerifiedOnChains < info.TokensFound {
		recs = append(recs, "Prefer chains where the source code is verified")
	}
	if info.TokensFound > 1 && info.HighRiskOnChains == 0 && info.MediumRiskOnChains == 0 {
		recs = append(recs, "Multi-chain deployment looks consistent")
	}
	return recs
}
