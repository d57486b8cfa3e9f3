package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"token_verifier/internal/entity"
)

func newCrossChainService(f *fixture) *crossChainServiceImpl {
	svc := NewCrossChainService(f.cfg, f.analyzer, f.registry, zap.NewNop())
	return svc.(*crossChainServiceImpl)
}

func TestVerifyAcrossChains_SingleDeployment(t *testing.T) {
	f := newFixture()
	svc := newCrossChainService(f)

	info, err := svc.VerifyAcrossChains(context.Background(), testAddress, []int64{1, 56})

	require.NoError(t, err)
	require.Len(t, info.PerChainResults, 2)
	// Results keep the requested chain order regardless of completion order.
	assert.Equal(t, int64(1), info.PerChainResults[0].ChainID)
	assert.Equal(t, int64(56), info.PerChainResults[1].ChainID)

	assert.True(t, info.PerChainResults[0].Exists)
	assert.True(t, info.PerChainResults[0].Verified)
	assert.Equal(t, entity.RiskLevelLow, info.PerChainResults[0].RiskLevel)
	assert.False(t, info.PerChainResults[1].Exists)

	assert.Equal(t, 1, info.TokensFound)
	assert.Equal(t, 1, info.VerifiedOnChains)
	assert.Equal(t, 0, info.HighRiskOnChains)
	assert.Contains(t, info.Recommendations, "Token exists on single chain only")
	assert.Empty(t, info.BridgeIndicators)
}

func TestVerifyAcrossChains_DefaultsToConfiguredChainSet(t *testing.T) {
	f := newFixture()
	f.cfg.Verification.CrossChainIDs = []int64{1, 56}
	svc := newCrossChainService(f)

	info, err := svc.VerifyAcrossChains(context.Background(), testAddress, nil)

	require.NoError(t, err)
	assert.Len(t, info.PerChainResults, 2)
}

func TestVerifyAcrossChains_ChainFailuresAreIsolated(t *testing.T) {
	f := newFixture()
	f.provider.clients[1].codeErr = errRPCDown
	svc := newCrossChainService(f)

	info, err := svc.VerifyAcrossChains(context.Background(), testAddress, []int64{1, 56, 999})

	require.NoError(t, err)
	require.Len(t, info.PerChainResults, 3)
	assert.Contains(t, info.PerChainResults[0].Error, "failed to fetch bytecode")
	assert.False(t, info.PerChainResults[0].Exists)
	assert.Contains(t, info.PerChainResults[2].Error, "unsupported chain id 999")
	assert.Equal(t, 0, info.TokensFound)
	assert.Contains(t, info.Recommendations, "Token not found on any requested chain; do not interact")
}

func TestVerifyAcrossChains_CancelledContext(t *testing.T) {
	f := newFixture()
	svc := newCrossChainService(f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info, err := svc.VerifyAcrossChains(ctx, testAddress, []int64{1, 56})

	assert.Nil(t, info)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregate_BridgeIndicators(t *testing.T) {
	results := []entity.ChainVerificationResult{
		{ChainID: 1, ChainName: "Ethereum Mainnet", Exists: true, Verified: true, RiskLevel: entity.RiskLevelLow, Owner: "0xaaa"},
		{ChainID: 56, ChainName: "BNB Smart Chain", Exists: true, Verified: false, RiskLevel: entity.RiskLevelHigh, Owner: "0xbbb", IsHighlyConcentrated: true},
		{ChainID: 137, ChainName: "Polygon PoS", Exists: false},
	}

	info := aggregate(testAddress, results)

	assert.Equal(t, 2, info.TokensFound)
	assert.Equal(t, 1, info.VerifiedOnChains)
	assert.Equal(t, 1, info.HighRiskOnChains)
	assert.Contains(t, info.BridgeIndicators, "Deployed on 2 chains")
	assert.Contains(t, info.BridgeIndicators, "High risk on 1 chains")
	assert.Contains(t, info.BridgeIndicators, "Verification status varies across chains")
	assert.Contains(t, info.BridgeIndicators, "Multiple owners across chains (2 distinct)")
	assert.Contains(t, info.BridgeIndicators, "High concentration across chains")
	require.Len(t, info.WrappedVersions, 1)
	assert.Contains(t, info.WrappedVersions[0], "BNB Smart Chain")
}

func TestAggregate_ConsistentMultiChainDeployment(t *testing.T) {
	results := []entity.ChainVerificationResult{
		{ChainID: 1, ChainName: "Ethereum Mainnet", Exists: true, Verified: true, RiskLevel: entity.RiskLevelLow, Owner: "0xaaa"},
		{ChainID: 56, ChainName: "BNB Smart Chain", Exists: true, Verified: true, RiskLevel: entity.RiskLevelLow, Owner: "0xaaa"},
	}

	info := aggregate(testAddress, results)

	assert.Equal(t, 2, info.TokensFound)
	assert.Equal(t, 2, info.VerifiedOnChains)
	assert.Contains(t, info.Recommendations, "Multi-chain deployment looks consistent")
	assert.NotContains(t, info.BridgeIndicators, "Verification status varies across chains")
	// A same-owner, fully verified pair only carries the deployment-count
	// indicator.
	assert.Equal(t, []string{"Deployed on 2 chains"}, info.BridgeIndicators)
}

func TestAggregate_CriticalCountsAsHighRisk(t *testing.T) {
	results := []entity.ChainVerificationResult{
		{ChainID: 1, Exists: true, Verified: true, RiskLevel: entity.RiskLevelCritical},
	}

	info := aggregate(testAddress, results)

	assert.Equal(t, 1, info.HighRiskOnChains)
	assert.Contains(t, info.Recommendations, "Avoid the 1 chain(s) flagged high risk")
}

func TestAggregate_MediumRiskRecommendsReview(t *testing.T) {
	results := []entity.ChainVerificationResult{
		{ChainID: 1, Exists: true, Verified: true, RiskLevel: entity.RiskLevelMedium},
		{ChainID: 56, Exists: true, Verified: false, RiskLevel: entity.RiskLevelLow},
	}

	info := aggregate(testAddress, results)

	assert.Equal(t, 1, info.MediumRiskOnChains)
	assert.Contains(t, info.Recommendations, "Review medium-risk deployments before automating")
	assert.Contains(t, info.Recommendations, "Prefer chains where the source code is verified")
}
