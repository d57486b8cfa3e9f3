// Package policy converts a finished analysis into the final automation
// decision. The posture is default-deny: a token is unsafe until the
// analysis proves otherwise, and hard overrides can only ever remove safety,
// never grant it.
package policy

import (
	"fmt"

	"token_verifier/internal/entity"
)

// Decide produces the verification decision for one analysis plus optional
// cross-chain aggregates. It is a pure function of its inputs.
func Decide(analysis *entity.TokenAnalysis, crossChain *entity.CrossChainInfo) entity.VerificationDecision {
	if analysis == nil {
		return entity.VerificationDecision{Reason: entity.ReasonVerificationError}
	}

	// Analysis-level errors short-circuit before any scoring is consulted.
	if analysis.Error != "" {
		return entity.VerificationDecision{
			Risks:  []string{analysis.Error},
			Reason: fmt.Sprintf("%s: %s", entity.ReasonVerificationError, analysis.Error),
		}
	}

	decision := entity.VerificationDecision{}
	risks := collectRisks(analysis, crossChain)

	// Primary gate: only a LOW risk level can open the safe path.
	switch analysis.RiskLevel {
	case entity.RiskLevelLow:
		decision.IsSafe = true
	case entity.RiskLevelMedium, entity.RiskLevelHigh:
		decision.RequiresApproval = true
	}

	// Hard overrides force unsafe regardless of the score-derived verdict.
	if analysis.Findings.UnverifiedCode {
		decision.IsSafe = false
	}
	if analysis.Holders.IsHighlyConcentrated {
		decision.IsSafe = false
	}
	if crossChain != nil {
		if crossChain.HighRiskOnChains > 0 {
			decision.IsSafe = false
			risks = append(risks, fmt.Sprintf("High risk detected on %d chain(s)", crossChain.HighRiskOnChains))
		}
		if crossChain.TokensFound == 0 {
			decision.IsSafe = false
			risks = append(risks, "Token not found on any verified chain")
		}
		if crossChain.VerifiedOnChains == 0 {
			decision.IsSafe = false
			risks = append(risks, "Token source is not verified on any chain")
		}
	}

	decision.CanAutomate = decision.IsSafe && len(risks) == 0
	decision.Risks = dedupe(risks)

	switch {
	case decision.IsSafe && decision.CanAutomate:
		decision.Reason = entity.ReasonSafeAutomatable
	case decision.IsSafe:
		decision.Reason = entity.ReasonSafeManual
	case decision.RequiresApproval:
		decision.Reason = entity.ReasonRequiresApproval
	default:
		decision.Reason = entity.ReasonUnsafe
	}

	return decision
}

// ValidationFailure builds the decision for a request rejected before any
// analysis ran (malformed address).
func ValidationFailure(errors []string) entity.VerificationDecision {
	return entity.VerificationDecision{
		Risks:  dedupe(errors),
		Reason: entity.ReasonValidationFailed,
	}
}

func collectRisks(analysis *entity.TokenAnalysis, crossChain *entity.CrossChainInfo) []string {
	var risks []string
	risks = append(risks, analysis.Findings.Risks...)
	risks = append(risks, analysis.Ownership.Risks...)
	risks = append(risks, analysis.Holders.ConcentrationRisks...)
	if crossChain != nil {
		risks = append(risks, crossChain.BridgeIndicators...)
	}
	return risks
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
