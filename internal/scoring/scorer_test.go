package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"token_verifier/internal/entity"
)

func TestScore_CleanVerifiedToken(t *testing.T) {
	standard := entity.StandardDetection{IsERC20: true, DetectedType: entity.StandardERC20}
	ownership := entity.OwnershipInfo{Owner: "0xab5801a7d398351b8be11c439e05c5b3259aec9b", IsMultisig: true}

	// 100 + 10 multisig + 5 ERC-20, clamped back down to 100.
	score := Score(standard, ownership, entity.HolderDistribution{}, entity.RiskFindings{})

	assert.Equal(t, 100, score)
	assert.Equal(t, entity.RiskLevelLow, LevelForScore(score))
}

func TestScore_ExactDeductions(t *testing.T) {
	ownership := entity.OwnershipInfo{
		Risks:   []string{"Single owner, high centralization"},
		IsProxy: true,
	}
	findings := entity.RiskFindings{
		UnverifiedCode: true,
		Risks:          []string{"Contract source code is not verified", "Bytecode contains a delegatecall trampoline"},
		RiskCount:      2,
	}

	// 100 - 5 (one ownership risk) - 15 (proxy) - 20 (unverified) - 4 (two
	// findings at 2 points each) = 56.
	score := Score(entity.StandardDetection{}, ownership, entity.HolderDistribution{}, findings)

	assert.Equal(t, 56, score)
	assert.Equal(t, entity.RiskLevelHigh, LevelForScore(score))
}

func TestScore_ConcentrationPenalties(t *testing.T) {
	holders := entity.HolderDistribution{
		IsHighlyConcentrated: true,
		ConcentrationRisks: []string{
			"Extreme concentration: top holder owns more than 50% of supply",
			"Top 5 holders own more than 80% of supply",
			"Top 10 holders own more than 95% of supply",
		},
	}

	// 100 - 20 (concentrated) - 10 (more than two concentration findings).
	score := Score(entity.StandardDetection{}, entity.OwnershipInfo{}, holders, entity.RiskFindings{})

	assert.Equal(t, 70, score)
}

func TestScore_TwoConcentrationFindingsSkipExtraPenalty(t *testing.T) {
	holders := entity.HolderDistribution{
		IsHighlyConcentrated: true,
		ConcentrationRisks: []string{
			"Extreme concentration: top holder owns more than 50% of supply",
			"Top 5 holders own more than 80% of supply",
		},
	}

	score := Score(entity.StandardDetection{}, entity.OwnershipInfo{}, holders, entity.RiskFindings{})

	assert.Equal(t, 80, score)
}

func TestScore_RiskCountPenaltyIsCapped(t *testing.T) {
	findings := entity.RiskFindings{RiskCount: 50}

	// 50 findings at 2 points each would be 100; the aggregate penalty caps
	// at 30.
	score := Score(entity.StandardDetection{}, entity.OwnershipInfo{}, entity.HolderDistribution{}, findings)

	assert.Equal(t, 70, score)
}

func TestScore_FindingFlagPenalties(t *testing.T) {
	findings := entity.RiskFindings{
		HasSelfdestruct: true,
		HasMinting:      true,
		IsPausable:      true,
		HasBlacklist:    true,
		ProxyPatterns:   true,
	}

	// 100 - 15 - 10 - 10 - 10 - 5 = 50 (RiskCount zero here on purpose).
	score := Score(entity.StandardDetection{}, entity.OwnershipInfo{}, entity.HolderDistribution{}, findings)

	assert.Equal(t, 50, score)
}

func TestScore_ClampsToZero(t *testing.T) {
	ownership := entity.OwnershipInfo{
		Risks:   []string{"a", "b", "c"},
		IsProxy: true,
	}
	holders := entity.HolderDistribution{
		IsHighlyConcentrated: true,
		ConcentrationRisks:   []string{"a", "b", "c"},
	}
	findings := entity.RiskFindings{
		UnverifiedCode:  true,
		HasSelfdestruct: true,
		HasMinting:      true,
		IsPausable:      true,
		HasBlacklist:    true,
		ProxyPatterns:   true,
		RiskCount:       20,
	}

	score := Score(entity.StandardDetection{}, ownership, holders, findings)

	assert.Equal(t, 0, score)
	assert.Equal(t, entity.RiskLevelCritical, LevelForScore(score))
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  entity.RiskLevel
	}{
		{100, entity.RiskLevelLow},
		{85, entity.RiskLevelLow},
		{80, entity.RiskLevelLow},
		{79, entity.RiskLevelMedium},
		{65, entity.RiskLevelMedium},
		{60, entity.RiskLevelMedium},
		{59, entity.RiskLevelHigh},
		{45, entity.RiskLevelHigh},
		{40, entity.RiskLevelHigh},
		{39, entity.RiskLevelCritical},
		{10, entity.RiskLevelCritical},
		{0, entity.RiskLevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %d", tt.score)
	}
}
