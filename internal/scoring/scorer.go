// Package scoring folds every verification signal into a deterministic
// 0-100 score and a risk-level classification.
package scoring

import "token_verifier/internal/entity"

// Fixed deductions and bonuses. Preserved exactly from the first generation
// of this engine; any recalibration needs product sign-off.
const (
	ownershipRiskPenalty = 5
	multisigBonus        = 10
	proxyPenalty         = 15

	concentrationPenalty      = 20
	manyConcentrationPenalty  = 10
	manyConcentrationFindings = 2

	unverifiedCodePenalty = 20
	selfdestructPenalty   = 15
	mintingPenalty        = 10
	pausablePenalty       = 10
	blacklistPenalty      = 10
	proxyPatternPenalty   = 5
	riskCountMultiplier   = 2
	riskCountPenaltyCap   = 30

	erc20Bonus = 5
)

// Risk-level breakpoints over the final score.
const (
	lowFloor    = 80
	mediumFloor = 60
	highFloor   = 40
)

// Score starts at 100, applies every deduction and bonus, and clamps the
// result to [0,100] after all adjustments.
func Score(standard entity.StandardDetection, ownership entity.OwnershipInfo, holders entity.HolderDistribution, findings entity.RiskFindings) int {
	score := 100

	// Ownership signals.
	score -= ownershipRiskPenalty * len(ownership.Risks)
	if ownership.IsMultisig {
		score += multisigBonus
	}
	if ownership.IsProxy {
		score -= proxyPenalty
	}

	// Holder concentration.
	if holders.IsHighlyConcentrated {
		score -= concentrationPenalty
	}
	if len(holders.ConcentrationRisks) > manyConcentrationFindings {
		score -= manyConcentrationPenalty
	}

	// Security findings.
	if findings.UnverifiedCode {
		score -= unverifiedCodePenalty
	}
	if findings.HasSelfdestruct {
		score -= selfdestructPenalty
	}
	if findings.HasMinting {
		score -= mintingPenalty
	}
	if findings.IsPausable {
		score -= pausablePenalty
	}
	if findings.HasBlacklist {
		score -= blacklistPenalty
	}
	if findings.ProxyPatterns {
		score -= proxyPatternPenalty
	}
	aggregate := findings.RiskCount * riskCountMultiplier
	if aggregate > riskCountPenaltyCap {
		aggregate = riskCountPenaltyCap
	}
	score -= aggregate

	// Standard bonus.
	if standard.IsERC20 {
		score += erc20Bonus
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// LevelForScore maps a final score to its risk level. Pure and
// order-independent: >=80 LOW, >=60 MEDIUM, >=40 HIGH, else CRITICAL.
func LevelForScore(score int) entity.RiskLevel {
	switch {
	case score >= lowFloor:
		return entity.RiskLevelLow
	case score >= mediumFloor:
		return entity.RiskLevelMedium
	case score >= highFloor:
		return entity.RiskLevelHigh
	default:
		return entity.RiskLevelCritical
	}
}
