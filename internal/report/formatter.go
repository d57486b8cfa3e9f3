// Package report renders a verification result as a human-readable text
// report for CLIs and chat surfaces.
package report

import (
	"fmt"
	"strings"

	"token_verifier/internal/entity"
)

// Format renders the full multi-section report for one result envelope.
func Format(result *entity.VerificationResult) string {
	var b strings.Builder

	b.WriteString("=== Token Risk Verification Report ===\n")
	fmt.Fprintf(&b, "Request:   %s\n", result.RequestID)
	fmt.Fprintf(&b, "Timestamp: %s\n", result.Timestamp)

	if analysis := result.ChainAnalysis; analysis != nil {
		b.WriteString("\n--- Chain Analysis ---\n")
		fmt.Fprintf(&b, "Address:  %s\n", analysis.Address)
		if analysis.ChainName != "" {
			fmt.Fprintf(&b, "Chain:    %s (%d)\n", analysis.ChainName, analysis.ChainID)
		}
		if analysis.Error != "" {
			fmt.Fprintf(&b, "Error:    %s\n", analysis.Error)
		} else if !analysis.IsContract {
			b.WriteString("Address is not a contract\n")
		} else {
			fmt.Fprintf(&b, "Standard: %s (confidence %d%%)\n", analysis.Standard.DetectedType, analysis.Standard.Confidence)
			fmt.Fprintf(&b, "Score:    %d/100 (%s)\n", analysis.OverallScore, analysis.RiskLevel)
			if analysis.Ownership.Owner != "" {
				owner := analysis.Ownership.Owner
				if analysis.Ownership.OwnerLabel != "" {
					owner += " (" + analysis.Ownership.OwnerLabel + ")"
				}
				fmt.Fprintf(&b, "Owner:    %s\n", owner)
			}
			if analysis.Holders.TotalHolders > 0 {
				fmt.Fprintf(&b, "Holders:  top1 %.1f%%, top5 %.1f%%, top10 %.1f%%\n",
					analysis.Holders.TopHolderPct, analysis.Holders.Top5Pct, analysis.Holders.Top10Pct)
			}
			writeList(&b, "Findings", analysis.Findings.Risks)
			writeList(&b, "Recommendations", analysis.Recommendations)
		}
	}

	if cross := result.CrossChainAnalysis; cross != nil {
		b.WriteString("\n--- Cross-Chain Analysis ---\n")
		fmt.Fprintf(&b, "Found on %d of %d chains (%d verified, %d high risk, %d medium risk)\n",
			cross.TokensFound, len(cross.PerChainResults), cross.VerifiedOnChains,
			cross.HighRiskOnChains, cross.MediumRiskOnChains)
		for _, r := range cross.PerChainResults {
			switch {
			case r.Error != "":
				fmt.Fprintf(&b, "  %-20s error: %s\n", chainLabel(r), r.Error)
			case !r.Exists:
				fmt.Fprintf(&b, "  %-20s not deployed\n", chainLabel(r))
			default:
				fmt.Fprintf(&b, "  %-20s %d/100 (%s)\n", chainLabel(r), r.OverallScore, r.RiskLevel)
			}
		}
		writeList(&b, "Bridge indicators", cross.BridgeIndicators)
		writeList(&b, "Recommendations", cross.Recommendations)
	}

	b.WriteString("\n--- Decision ---\n")
	decision := result.Decision
	fmt.Fprintf(&b, "Safe:              %t\n", decision.IsSafe)
	fmt.Fprintf(&b, "Can automate:      %t\n", decision.CanAutomate)
	fmt.Fprintf(&b, "Requires approval: %t\n", decision.RequiresApproval)
	fmt.Fprintf(&b, "Reason:            %s\n", decision.Reason)
	writeList(&b, "Risks", decision.Risks)

	return b.String()
}

func chainLabel(r entity.ChainVerificationResult) string {
	if r.ChainName != "" {
		return r.ChainName
	}
	return fmt.Sprintf("chain %d", r.ChainID)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
