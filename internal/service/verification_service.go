package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"token_verifier/internal/cache"
	"token_verifier/internal/config"
	"token_verifier/internal/entity"
	"token_verifier/internal/policy"
	"token_verifier/internal/port"
	"token_verifier/internal/report"
	"token_verifier/internal/validator"
	"token_verifier/pkg/metrics"
)

// verificationServiceImpl implements the VerificationService interface.
type verificationServiceImpl struct {
	cfg        *config.Config
	validator  *validator.AddressValidator
	analyzer   *ChainAnalyzer
	crossChain port.CrossChainService
	cache      *cache.VerificationCache
	logger     *zap.Logger
}

// NewVerificationService creates a new instance of VerificationService.
func NewVerificationService(
	cfg *config.Config,
	addressValidator *validator.AddressValidator,
	chainAnalyzer *ChainAnalyzer,
	crossChain port.CrossChainService,
	verificationCache *cache.VerificationCache,
	logger *zap.Logger,
) port.VerificationService {
	return &verificationServiceImpl{
		cfg:        cfg,
		validator:  addressValidator,
		analyzer:   chainAnalyzer,
		crossChain: crossChain,
		cache:      verificationCache,
		logger:     logger.Named("VerificationService"),
	}
}

// Verify runs the full verification flow for one request. Every failure
// mode comes back inside the result envelope; the error return is reserved
// for a nil receiver state and is always nil in practice.
func (s *verificationServiceImpl) Verify(ctx context.Context, req entity.VerificationRequest) (result *entity.VerificationResult, err error) {
	started := time.Now()
	defer func() {
		// Orchestration-level panics are recovered into an error decision
		// rather than crashing the caller.
		if r := recover(); r != nil {
			s.logger.Error("Recovered panic during verification", zap.Any("panic", r))
			result = s.errorResult(req.TokenAddress, fmt.Sprintf("internal error: %v", r))
			err = nil
		}
		metrics.ObserveVerificationDuration(time.Since(started))
	}()

	validation := s.validator.Validate(req.TokenAddress)
	if !validation.IsValid {
		s.logger.Warn("Rejected malformed token address",
			zap.String("input", req.TokenAddress),
			zap.Strings("errors", validation.Errors))
		metrics.IncVerification("invalid")
		return s.validationResult(req.TokenAddress, validation), nil
	}
	address := validation.Address

	chainID := req.ChainID
	if chainID == 0 {
		chainID = s.cfg.Verification.DefaultChainID
	}

	key := cache.Key(address, chainID, req.CrossChainVerification)
	if cached := s.cache.Get(key); cached != nil {
		s.logger.Debug("Verification cache hit", zap.String("key", key))
		metrics.IncCacheHit()
		return cached, nil
	}
	metrics.IncCacheMiss()

	outcome := s.analyzer.AnalyzeChain(ctx, address, chainID)
	analysis := outcome.Analysis

	var crossChainInfo *entity.CrossChainInfo
	if req.CrossChainVerification {
		info, ccErr := s.crossChain.VerifyAcrossChains(ctx, address, req.ChainIDs)
		if ccErr != nil {
			s.logger.Warn("Cross-chain verification did not complete",
				zap.String("address", address),
				zap.Error(ccErr))
		} else {
			crossChainInfo = info
		}
	}

	decision := policy.Decide(analysis, crossChainInfo)
	for _, warning := range validation.Warnings {
		decision.Risks = appendUnique(decision.Risks, warning)
	}

	result = &entity.VerificationResult{
		RequestID:          uuid.NewString(),
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		ChainAnalysis:      analysis,
		CrossChainAnalysis: crossChainInfo,
		Decision:           decision,
	}
	result.FormattedReport = report.Format(result)

	switch outcome.Status {
	case entity.OutcomeOK:
		metrics.IncVerification("ok")
	case entity.OutcomeDegraded:
		metrics.IncVerification("degraded")
	default:
		metrics.IncVerification("error")
	}

	// A cancelled run must leave no side effects behind; skip the cache
	// write when the caller has given up.
	if ctx.Err() == nil {
		s.cache.Set(key, result)
	}

	s.logger.Info("Verification complete",
		zap.String("address", address),
		zap.Int64("chainId", chainID),
		zap.Bool("crossChain", req.CrossChainVerification),
		zap.String("riskLevel", string(analysis.RiskLevel)),
		zap.Bool("isSafe", decision.IsSafe))
	return result, nil
}

// validationResult is the terminal envelope for a malformed address: score
// zero, CRITICAL, no downstream calls made.
func (s *verificationServiceImpl) validationResult(input string, validation entity.AddressValidation) *entity.VerificationResult {
	analysis := &entity.TokenAnalysis{
		Address:   input,
		RiskLevel: entity.RiskLevelCritical,
		Error:     fmt.Sprintf("address validation failed: %s", strings.Join(validation.Errors, "; ")),
	}
	result := &entity.VerificationResult{
		RequestID:     uuid.NewString(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChainAnalysis: analysis,
		Decision:      policy.ValidationFailure(validation.Errors),
	}
	result.FormattedReport = report.Format(result)
	return result
}

func (s *verificationServiceImpl) errorResult(input, message string) *entity.VerificationResult {
	analysis := &entity.TokenAnalysis{
		Address:   input,
		RiskLevel: entity.RiskLevelCritical,
		Error:     message,
	}
	result := &entity.VerificationResult{
		RequestID:     uuid.NewString(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChainAnalysis: analysis,
		Decision:      policy.Decide(analysis, nil),
	}
	result.FormattedReport = report.Format(result)
	return result
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
