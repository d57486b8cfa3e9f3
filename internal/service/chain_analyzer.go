package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"token_verifier/internal/analyzer"
	"token_verifier/internal/bytecode"
	"token_verifier/internal/config"
	"token_verifier/internal/entity"
	"token_verifier/internal/port"
)

// ChainAnalyzer runs the full single-chain analysis pipeline: snapshot
// fetch, then the four independent sub-analyses (standard detection, risk
// detection, ownership, holder distribution) concurrently, then scoring.
//
// Sub-analyses are isolated from each other: a collaborator failure in one
// substitutes that sub-analysis' documented degraded default and the others
// proceed. Only a failed bytecode fetch is terminal for the chain, since
// everything downstream keys off the snapshot.
type ChainAnalyzer struct {
	cfg            *config.Config
	registry       port.ChainRegistry
	clientProvider port.ChainClientProvider
	explorer       port.ExplorerClient
	classifier     *bytecode.StandardClassifier
	heuristics     *bytecode.Heuristics
	ownership      *analyzer.OwnershipAnalyzer
	holders        *analyzer.HolderConcentrationAnalyzer
	scoreFn        func(entity.StandardDetection, entity.OwnershipInfo, entity.HolderDistribution, entity.RiskFindings) int
	levelFn        func(int) entity.RiskLevel
	logger         *zap.Logger
}

// NewChainAnalyzer wires the pipeline from its collaborators.
func NewChainAnalyzer(
	cfg *config.Config,
	registry port.ChainRegistry,
	clientProvider port.ChainClientProvider,
	explorer port.ExplorerClient,
	ownership *analyzer.OwnershipAnalyzer,
	holders *analyzer.HolderConcentrationAnalyzer,
	scoreFn func(entity.StandardDetection, entity.OwnershipInfo, entity.HolderDistribution, entity.RiskFindings) int,
	levelFn func(int) entity.RiskLevel,
	logger *zap.Logger,
) *ChainAnalyzer {
	return &ChainAnalyzer{
		cfg:            cfg,
		registry:       registry,
		clientProvider: clientProvider,
		explorer:       explorer,
		classifier:     bytecode.NewStandardClassifier(bytecode.ClassifierConfigForMode(cfg.Verification.ClassifierMode)),
		heuristics:     bytecode.NewHeuristics(),
		ownership:      ownership,
		holders:        holders,
		scoreFn:        scoreFn,
		levelFn:        levelFn,
		logger:         logger.Named("ChainAnalyzer"),
	}
}

// AnalyzeChain produces the TokenAnalysis for one (address, chainId) pair.
// The address must already be canonical. All failure modes come back as
// data: either an OutcomeError analysis with Error set, or an
// OutcomeDegraded analysis with the degraded sub-results folded in.
func (a *ChainAnalyzer) AnalyzeChain(ctx context.Context, address string, chainID int64) entity.AnalysisOutcome {
	analysis := &entity.TokenAnalysis{
		Address:   address,
		ChainID:   chainID,
		RiskLevel: entity.RiskLevelCritical,
	}

	chain, ok := a.registry.ByChainID(chainID)
	if !ok {
		analysis.Error = fmt.Sprintf("unsupported chain id %d", chainID)
		return entity.AnalysisOutcome{Status: entity.OutcomeError, Analysis: analysis, Reason: analysis.Error}
	}
	analysis.ChainName = chain.Name

	chainClient, err := a.clientProvider.GetClient(chain)
	if err != nil {
		analysis.Error = fmt.Sprintf("chain %s is unreachable: %v", chain.Name, err)
		return entity.AnalysisOutcome{Status: entity.OutcomeError, Analysis: analysis, Reason: analysis.Error}
	}

	analysisCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Verification.AnalysisTimeoutMs)*time.Millisecond)
	defer cancel()

	rawCode, err := chainClient.CodeAt(analysisCtx, address)
	if err != nil {
		analysis.Error = fmt.Sprintf("failed to fetch bytecode: %v", err)
		return entity.AnalysisOutcome{Status: entity.OutcomeError, Analysis: analysis, Reason: analysis.Error}
	}
	if rawCode == "" {
		analysis.IsContract = false
		analysis.OverallScore = 0
		analysis.Recommendations = []string{"Address is not a contract"}
		return entity.AnalysisOutcome{Status: entity.OutcomeOK, Analysis: analysis}
	}

	snapshot := entity.ContractSnapshot{
		Address:     address,
		ChainID:     chainID,
		RawBytecode: rawCode,
		IsContract:  true,
	}

	degraded := false
	source, err := a.explorer.ContractSource(analysisCtx, chain, address)
	if err != nil {
		a.logger.Warn("Failed to fetch contract source, proceeding as unverified",
			zap.String("address", address),
			zap.Int64("chainId", chainID),
			zap.Error(err))
		degraded = true
	} else {
		snapshot.SourceText = source.SourceCode
		snapshot.SourceVerified = source.IsVerified
	}

	analysis.IsContract = true

	// The four sub-analyses are independent; run them concurrently. Each
	// goroutine writes its own field and reports success so a failure never
	// cancels its siblings; degradation is recorded, not propagated.
	eg, childCtx := errgroup.WithContext(analysisCtx)

	eg.Go(func() error {
		selectors := bytecode.ExtractSelectors(snapshot.RawBytecode)
		analysis.Standard = a.classifier.Classify(selectors)
		return nil
	})
	eg.Go(func() error {
		analysis.Findings = a.heuristics.Analyze(snapshot)
		return nil
	})
	eg.Go(func() error {
		analysis.Ownership = a.ownership.Analyze(childCtx, chain, address, snapshot.RawBytecode)
		return nil
	})
	eg.Go(func() error {
		analysis.Holders = a.holders.Analyze(childCtx, chain, address)
		return nil
	})

	if err := eg.Wait(); err != nil {
		// Goroutines always return nil; this only fires on context
		// cancellation racing the group setup.
		a.logger.Error("Sub-analysis group failed", zap.String("address", address), zap.Error(err))
	}
	if ctx.Err() != nil {
		analysis.Error = fmt.Sprintf("analysis cancelled: %v", ctx.Err())
		return entity.AnalysisOutcome{Status: entity.OutcomeError, Analysis: analysis, Reason: analysis.Error}
	}

	analysis.OverallScore = a.scoreFn(analysis.Standard, analysis.Ownership, analysis.Holders, analysis.Findings)
	analysis.RiskLevel = a.levelFn(analysis.OverallScore)
	analysis.Recommendations = chainRecommendations(analysis)

	status := entity.OutcomeOK
	if degraded || hasDegradedMarkers(analysis) {
		status = entity.OutcomeDegraded
	}
	return entity.AnalysisOutcome{Status: status, Analysis: analysis}
}

// hasDegradedMarkers detects the documented degraded defaults of the
// sub-analyses inside a finished analysis.
func hasDegradedMarkers(analysis *entity.TokenAnalysis) bool {
	for _, risk := range analysis.Ownership.Risks {
		if risk == "Unable to get contract creation info" {
			return true
		}
	}
	for _, risk := range analysis.Holders.ConcentrationRisks {
		if risk == "Cannot analyze holder distribution" {
			return true
		}
	}
	return false
}

func chainRecommendations(analysis *entity.TokenAnalysis) []string {
	var recs []string
	if analysis.Findings.UnverifiedCode {
		recs = append(recs, "Request source verification before automating interactions")
	}
	if analysis.Findings.HasMinting {
		recs = append(recs, "Monitor total supply for unexpected mints")
	}
	if analysis.Findings.HasSelfdestruct {
		recs = append(recs, "Contract can self-destruct; avoid holding long-lived positions")
	}
	if analysis.Holders.IsHighlyConcentrated {
		recs = append(recs, "Review top holder wallets before providing liquidity")
	}
	if analysis.Ownership.IsProxy || analysis.Findings.ProxyPatterns {
		recs = append(recs, "Inspect the proxy implementation contract as well")
	}
	switch analysis.RiskLevel {
	case entity.RiskLevelCritical:
		recs = append(recs, "Do not automate interactions with this token")
	case entity.RiskLevelLow:
		if len(recs) == 0 {
			recs = append(recs, "No additional checks required")
		}
	}
	return recs
}
